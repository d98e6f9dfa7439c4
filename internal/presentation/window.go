package presentation

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// WindowRenderer shows deck pages in an OpenCV window with a slide counter.
// On some platforms the window must be driven from the main thread.
type WindowRenderer struct {
	deck   Deck
	window *gocv.Window
}

// NewWindowRenderer opens a window titled name for deck.
func NewWindowRenderer(name string, deck Deck) *WindowRenderer {
	return &WindowRenderer{
		deck:   deck,
		window: gocv.NewWindow(name),
	}
}

func (w *WindowRenderer) Render(index, total int) error {
	mat, err := composeSlide(w.deck, index, total)
	if err != nil {
		return err
	}
	defer mat.Close()

	w.window.IMShow(mat)
	w.window.WaitKey(1)
	return nil
}

// Close destroys the window.
func (w *WindowRenderer) Close() error {
	return w.window.Close()
}

var counterColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}

// composeSlide renders page index of deck into a BGR Mat with an "n / total"
// counter in the bottom right corner.
func composeSlide(deck Deck, index, total int) (gocv.Mat, error) {
	img, err := deck.RenderPage(index)
	if err != nil {
		return gocv.Mat{}, err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert page %d: %w", index, err)
	}

	label := fmt.Sprintf("%d / %d", index+1, total)
	size := gocv.GetTextSize(label, gocv.FontHersheySimplex, 0.8, 2)
	org := image.Pt(mat.Cols()-size.X-16, mat.Rows()-16)
	gocv.PutText(&mat, label, org, gocv.FontHersheySimplex, 0.8, counterColor, 2)

	return mat, nil
}
