package app

import (
	"log"
	"time"

	"github.com/ayusman/palmdeck/internal/capture"
)

// runPipeline reads frames at the camera rate while the camera is started and
// gesture processing is enabled. Frames are handled strictly one at a time so
// consecutive-frame counts in the engine see every frame in order.
func (a *App) runPipeline(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	fps := a.camera.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.lifecycle.Started() || !a.engine.Enabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			_, err = a.ProcessFrame(frame, time.Now())
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
			}
		}
	}
}
