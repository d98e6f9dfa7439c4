package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ayusman/palmdeck/internal/app"
	"github.com/ayusman/palmdeck/internal/bus"
	"github.com/ayusman/palmdeck/internal/config"
	"github.com/ayusman/palmdeck/internal/hotkey"
	"github.com/ayusman/palmdeck/internal/plugin"
	"github.com/ayusman/palmdeck/internal/presentation"
	"github.com/ayusman/palmdeck/internal/tray"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	deckPath   = flag.String("deck", "", "PDF slide deck to present")
	cameraDev  = flag.String("camera", "", "Camera index or video file")
	pluginDir  = flag.String("plugins", "", "Plugin directory")
	pluginName = flag.String("plugin", "", "Plugin that receives slide changes")
	showWindow = flag.Bool("window", true, "Show slides in a window")
	showTray   = flag.Bool("tray", true, "Show the system tray menu")
)

func main() {
	flag.Parse()
	fmt.Println("palmdeck - gesture slide control")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(&cfg)

	b := bus.New()

	deck, err := openDeck(cfg.Presentation)
	if err != nil {
		log.Fatalf("Failed to open deck: %v", err)
	}
	defer deck.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderers, closeWindow, err := buildRenderers(ctx, cfg, deck)
	if err != nil {
		log.Fatalf("Failed to set up rendering: %v", err)
	}
	defer closeWindow()

	controller := presentation.NewController(deck.PageCount(), renderers, b)
	controller.Attach(b)
	defer controller.Detach()
	if err := controller.Show(); err != nil {
		log.Printf("Failed to show first slide: %v", err)
	}

	a, err := app.New(app.Config{
		Gesture:  cfg.Gesture,
		Detector: cfg.Detector,
		Camera:   cfg.Camera,
	}, b)
	if err != nil {
		log.Fatalf("Gesture control unavailable: %v", err)
	}

	var t *tray.Tray
	if cfg.Tray {
		t = tray.New()
		t.Attach(b)
	}

	// consent asks for the camera once and reports a failed acquisition.
	consent := func() {
		if !controller.Consent() {
			return
		}
		if err := a.Lifecycle().Err(); err != nil && t != nil {
			t.SetCameraFailure(err)
		}
	}

	keys, err := hotkey.New(cfg.Hotkeys,
		consent,
		func() { a.Lifecycle().Toggle() },
	)
	if err != nil {
		log.Fatalf("Failed to set up hotkeys: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Run(gctx) })
	g.Go(func() error { return keys.Run(gctx) })

	if t != nil {
		t.OnStartCamera(consent)
		t.OnToggle(func() { a.Lifecycle().Toggle() })
		t.OnQuit(stop)
		go func() {
			<-gctx.Done()
			t.Quit()
		}()
		t.Run()
		stop()
	} else {
		log.Printf("Press %s to start the camera", cfg.Hotkeys.Consent)
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("palmdeck stopped: %v", err)
	}
	log.Printf("Processed %d frames", a.Frames())
	log.Println("Bye")
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "deck":
			cfg.Presentation.Deck = *deckPath
		case "camera":
			cfg.Camera.Device = *cameraDev
		case "plugins":
			cfg.Plugins.Dir = *pluginDir
		case "plugin":
			cfg.Plugins.Name = *pluginName
		case "window":
			cfg.Presentation.Window = *showWindow
		case "tray":
			cfg.Tray = *showTray
		}
	})
}

func openDeck(cfg config.PresentationConfig) (presentation.Deck, error) {
	if cfg.Deck == "" {
		log.Printf("No deck given, presenting %d blank slides", cfg.BlankSlides)
		return presentation.NewBlankDeck(cfg.BlankSlides), nil
	}
	deck, err := presentation.OpenPDF(cfg.Deck, cfg.DPI)
	if err != nil {
		return nil, err
	}
	log.Printf("Opened %s (%d slides)", cfg.Deck, deck.PageCount())
	return deck, nil
}

// buildRenderers returns the configured renderers and a cleanup function.
func buildRenderers(ctx context.Context, cfg config.Config, deck presentation.Deck) (presentation.MultiRenderer, func(), error) {
	var renderers presentation.MultiRenderer
	cleanup := func() {}

	if cfg.Presentation.Window {
		w := presentation.NewWindowRenderer(cfg.Presentation.WindowTitle, deck)
		renderers = append(renderers, w)
		cleanup = func() {
			if err := w.Close(); err != nil {
				log.Printf("Error closing window: %v", err)
			}
		}
	}

	if cfg.Plugins.Name != "" {
		mgr := plugin.NewManager(cfg.Plugins.Dir)
		if err := mgr.Discover(); err != nil {
			return nil, cleanup, err
		}
		p, err := mgr.Get(cfg.Plugins.Name)
		if err != nil {
			return nil, cleanup, err
		}
		settings, err := cfg.Plugins.SettingsJSON()
		if err != nil {
			return nil, cleanup, err
		}
		renderers = append(renderers, presentation.NewPluginRenderer(ctx, plugin.NewExecutor(cfg.Plugins.Timeout), p, settings))
		log.Printf("Forwarding slide changes to plugin %s", p.Manifest.Name)
	}

	if len(renderers) == 0 {
		fmt.Fprintln(os.Stderr, "No renderer configured, slide changes are only logged")
		renderers = append(renderers, presentation.RendererFunc(func(index, total int) error {
			log.Printf("Slide %d/%d", index+1, total)
			return nil
		}))
	}
	return renderers, cleanup, nil
}
