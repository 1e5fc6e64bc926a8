package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/deathtrip/app"
	"github.com/lixenwraith/deathtrip/asset"
	"github.com/lixenwraith/deathtrip/audio"
	"github.com/lixenwraith/deathtrip/config"
	"github.com/lixenwraith/deathtrip/dialogue"
	"github.com/lixenwraith/deathtrip/game"
	"github.com/lixenwraith/deathtrip/menu"
	"github.com/lixenwraith/deathtrip/pixmap"
	"github.com/lixenwraith/deathtrip/settings"
	"github.com/lixenwraith/deathtrip/story"
	"github.com/lixenwraith/deathtrip/ui"
)

var (
	configFlag = flag.String("config", "", "config file (default "+config.DefaultFile+" when present)")
	debugFlag  = flag.Bool("debug", false, "write a debug log under the log directory")
	muteFlag   = flag.Bool("mute", false, "disable audio")
	fsmFlag    = flag.String("fsm", "", "dialogue FSM override file")
)

const (
	menuBackground = "images/menu.jpg"
	clickSound     = "sound/click.wav"
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, cfgSource, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deathtrip: %v\n", err)
		return 1
	}

	logger, logFile, err := setupLogging(cfg, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deathtrip: %v (continuing without log)\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Info().Str("config", cfgSource).Str("assets", cfg.AssetDir).Msg("starting")

	table, storySource, err := story.LoadAuto(cfg.Asset(cfg.StoryFile), asset.DefaultStory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deathtrip: story: %v\n", err)
		return 1
	}
	logger.Info().Str("source", storySource).Int("scenes", table.Len()).Msg("story loaded")
	if orphans := table.Unreachable(); len(orphans) > 0 {
		logger.Warn().Strs("scenes", orphans).Msg("unreachable scenes")
	}

	director, err := dialogue.NewDirector(table, dialogue.Config{
		Timing:         cfg.Timing(),
		FSMPath:        *fsmFlag,
		FSMDefaultPath: cfg.Asset(cfg.DialogueFSMFile),
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deathtrip: %v\n", err)
		return 1
	}

	store := settings.Open(cfg.SettingsDir, logger)
	sound := openAudio(cfg, store, logger)
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "deathtrip: terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "deathtrip: terminal: %v\n", err)
		return 1
	}

	// Restore the terminal before anything reaches stderr
	finished := false
	fini := func() {
		if !finished {
			finished = true
			screen.Fini()
		}
	}
	defer fini()
	defer func() {
		if r := recover(); r != nil {
			fini()
			fmt.Fprintf(os.Stderr, "\nDEATHTRIP CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()

	images := pixmap.NewCache(logger)
	router := app.NewRouter(ui.NewFade(cfg.Fade.Speed), logger)
	// converted images are sized to the terminal
	router.OnResize(images.Purge)
	router.Register(app.ScreenMenu, menu.NewMain(router, sound, images, cfg.Asset(menuBackground)))
	router.Register(app.ScreenInfo, menu.NewInfo(router, sound))
	router.Register(app.ScreenSettings, menu.NewSettings(router, sound, store, logger))
	router.Register(app.ScreenGame, game.New(game.Deps{
		Nav:      router,
		Director: director,
		Table:    table,
		Sound:    sound,
		Images:   images,
		Resolve:  cfg.Asset,
		Logger:   logger,
	}))
	if err := router.Start(app.ScreenMenu); err != nil {
		fini()
		fmt.Fprintf(os.Stderr, "deathtrip: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := app.NewLoop(screen, router, cfg.TickInterval(), logger).Run(ctx)
	router.Close()
	if err := store.Save(); err != nil {
		logger.Warn().Err(err).Msg("settings not saved on exit")
	}
	fini()

	var pe *app.PanicError
	switch {
	case errors.As(runErr, &pe):
		logger.Error().Interface("panic", pe.Value).Msg("crashed")
		fmt.Fprintf(os.Stderr, "\nDEATHTRIP CRASHED: %v\nStack Trace:\n%s\n", pe.Value, pe.Stack)
		return 1
	case runErr != nil:
		logger.Error().Err(runErr).Msg("loop failed")
		fmt.Fprintf(os.Stderr, "deathtrip: %v\n", runErr)
		return 1
	}
	logger.Info().Msg("bye")
	return 0
}

// openAudio returns the speaker-backed player, or Silent when muted or unavailable
func openAudio(cfg *config.Config, store *settings.Store, logger zerolog.Logger) audio.Player {
	if *muteFlag || cfg.Audio.Muted {
		logger.Info().Msg("audio muted")
		return audio.Silent{}
	}
	sm := audio.NewSoundManager(audio.Config{
		SampleRate:  cfg.Audio.SampleRate,
		ClickFile:   cfg.Asset(clickSound),
		ClickVolume: store.Click(),
		MusicVolume: store.Music(),
	}, logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return audio.Silent{}
	}
	return sm
}
