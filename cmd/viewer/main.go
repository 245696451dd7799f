package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		settingsPath = flag.String("settings", "settings.yaml", "settings file (.yaml, .yml or .toml)")
		addr         = flag.String("addr", ":8080", "control panel listen address")
		normalMap    = flag.String("normal-map", "assets/ground_normal.png", "ground normal map image")
		width        = flag.Int("width", 1280, "initial window width")
		height       = flag.Int("height", 720, "initial window height")
		vsync        = flag.Bool("vsync", true, "wait for vertical blank when presenting")
		fps          = flag.Float64("fps", 0, "render frame cap (0 = uncapped)")
		software     = flag.Bool("software", false, "force the fallback (software) adapter")
		level        = flag.String("log-level", "info", "log level: debug | info | warn | error")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", *level).Msg("unknown log level; using info")
	}

	if err := run(options{
		settingsPath: *settingsPath,
		addr:         *addr,
		normalMap:    *normalMap,
		width:        *width,
		height:       *height,
		vsync:        *vsync,
		fps:          *fps,
		software:     *software,
	}); err != nil {
		log.Fatal().Err(err).Msg("viewer failed")
	}
}

type options struct {
	settingsPath string
	addr         string
	normalMap    string
	width        int
	height       int
	vsync        bool
	fps          float64
	software     bool
}

// run builds the viewer and blocks until the window closes or the process is signalled.
// The window and renderer are created on the calling goroutine, which must be the main one.
func run(opts options) error {
	initial, err := settings.Load(opts.settingsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", opts.settingsPath).Msg("settings load failed; using defaults")
		initial = settings.Default()
	}
	store := settings.NewStore(settings.WithSettings(initial))
	current := store.Snapshot()

	win, err := window.NewWindow(
		window.WithTitle("oxy-viewer"),
		window.WithWidth(opts.width),
		window.WithHeight(opts.height),
		window.WithFullscreen(current.General.Fullscreen),
	)
	if err != nil {
		return err
	}
	// Deferred first so it runs last: the renderer releases its surface before the window goes.
	defer win.Destroy()

	presentMode := renderer.PresentModeVSync
	if !opts.vsync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(current.General.AntiAliasing.Samples())),
		renderer.WithForceSoftwareRenderer(opts.software),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	normal := loadNormalMap(loader.NewLoader(), opts.normalMap)

	prof := profiler.NewProfiler(profiler.WithLogging(current.General.ShowStats))

	sc := scene.NewScene("configurator", store,
		scene.WithNormalMap(normal),
		scene.WithSyncHook(func(s settings.Settings) {
			win.SetFullscreen(s.General.Fullscreen)
			prof.SetLogging(s.General.ShowStats)
		}),
	)
	if err := sc.Init(r); err != nil {
		return err
	}

	input := newInputQueue(sc.Camera().Controller(), sc, store)
	win.SetKeyDownCallback(input.KeyDown)
	win.SetScrollCallback(input.Scroll)
	win.SetDragCallback(input.Drag)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiler(prof),
		engine.WithRenderFrameLimit(opts.fps),
	)
	// Input drains before the scene callbacks so the constraint sees this frame's moves.
	eng.OnFrame("input", input.Drain)
	eng.AddScene(0, sc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	srv := panel.NewServer(store,
		panel.WithAddr(opts.addr),
		panel.WithSettingsPath(opts.settingsPath),
		panel.WithResetter(sc),
		panel.WithProfiler(prof),
	)
	g.Go(func() error { return srv.ListenAndServe(gctx) })
	g.Go(func() error {
		// Hot reload is optional; the viewer keeps running without it.
		if err := settings.Watch(gctx, opts.settingsPath, store); err != nil {
			log.Warn().Err(err).Msg("settings hot reload disabled")
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			eng.Quit()
		case <-eng.Done():
		}
		return nil
	})

	// Run returns after the render goroutine exits; the deferred release and destroy follow.
	eng.Run()
	stop()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadNormalMap decodes the ground normal map on the loader's worker pool. A missing or
// unreadable file yields the loader's flat fallback.
func loadNormalMap(l loader.Loader, path string) common.TextureStagingData {
	textures, err := l.LoadTextures(map[string]string{scene.GroundNormalTexture: path})
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("normal map unavailable; ground renders flat")
	}
	return textures[scene.GroundNormalTexture]
}
