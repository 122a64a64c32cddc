package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/vi-saber/audio"
	"github.com/lixenwraith/vi-saber/config"
	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/engine"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/logging"
	"github.com/lixenwraith/vi-saber/parameter"
	"github.com/lixenwraith/vi-saber/render"
	"github.com/lixenwraith/vi-saber/slicer"
	"github.com/lixenwraith/vi-saber/status"
	"github.com/lixenwraith/vi-saber/system"
)

type flash struct {
	event.Feedback
	until time.Time
}

// Sandbox drives one session from the terminal
type Sandbox struct {
	screen tcell.Screen
	view   render.View

	clock   *engine.PausableClock
	session *system.Session
	spawner *system.SpawnSystem
	sound   *audio.SoundManager
	queue   *event.Queue
	reg     *status.Registry
	logger  zerolog.Logger

	active   core.SaberID
	mouseX   int
	mouseY   int
	hasMouse bool
	flashes  []flash

	statPaused *atomic.Bool
}

func NewSandbox(cfg config.Config, mute bool, logger zerolog.Logger) (*Sandbox, error) {
	reg := status.NewRegistry()
	recorder, err := status.NewRecorder(reg, status.Meter(cfg.Metrics.Enabled))
	if err != nil {
		return nil, err
	}

	sound := audio.NewSoundManager(logger)
	if cfg.Audio.Enabled && !mute {
		// Audio is optional, the sandbox plays silently without a device
		_ = sound.Initialize()
	}
	reg.Bools.Get(status.KeyAudioDisabled).Store(!sound.Enabled())

	queue := event.NewQueue()
	sink := event.Fanout{recorder, sound, event.NewLogSink(logger), queue}

	screen, err := tcell.NewScreen()
	if err != nil {
		sound.Cleanup()
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		sound.Cleanup()
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	core.SetCrashCleanup(screen.Fini)

	w, h := screen.Size()
	sb := &Sandbox{
		screen: screen,
		view:   render.NewView(w, h, cfg.Grid.CenterY),
		clock:  engine.NewPausableClock(engine.NewSystemClock()),
		session: system.NewSession(cfg, system.SessionDeps{
			Logger:   logger,
			Sink:     sink,
			Splitter: slicer.NewBoxSplitter(),
			Registry: reg,
		}),
		spawner: system.NewSpawnSystem(cfg.Sandbox.Seed, cfg.Grid.Columns, cfg.Grid.Rows, cfg.Sandbox.SpawnInterval),
		sound:   sound,
		queue:   queue,
		reg:     reg,
		logger:  logger,
	}
	sb.statPaused = reg.Bools.Get(status.KeyPaused)
	sb.selectSaber(core.SaberRight)
	return sb, nil
}

func (sb *Sandbox) selectSaber(id core.SaberID) {
	if id != sb.active {
		// the idle hand leaves the play area so it cannot touch blocks
		_ = sb.session.Sabers.Reset(sb.active)
	}
	sb.active = id
	sb.reg.Strings.Get(status.KeyActiveSaber).Store(id.String())
}

func (sb *Sandbox) togglePause() {
	paused := sb.clock.Toggle()
	sb.statPaused.Store(paused)
	sb.logger.Info().Bool("paused", paused).Msg("pause toggled")
}

func (sb *Sandbox) toggleMute() {
	enabled := sb.sound.Enabled()
	sb.sound.SetMuted(enabled)
	sb.reg.Bools.Get(status.KeyAudioDisabled).Store(!sb.sound.Enabled())
}

func (sb *Sandbox) restart() {
	sb.session.Restart()
	sb.spawner.Delay(sb.clock.Now())
	sb.flashes = sb.flashes[:0]
	sb.queue.Consume()
}

func (sb *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			sb.selectSaber((sb.active + 1) % core.SaberCount)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				sb.togglePause()
			case 'r':
				sb.restart()
			case 'm':
				sb.toggleMute()
			}
		}

	case *tcell.EventMouse:
		sb.mouseX, sb.mouseY = ev.Position()
		sb.hasMouse = true

	case *tcell.EventResize:
		sb.screen.Sync()
		sb.view.Resize(sb.screen.Size())
	}

	return true
}

// tick feeds the active saber, spawns and steps the session
func (sb *Sandbox) tick() {
	if sb.clock.IsPaused() {
		return
	}
	now := sb.clock.Now()

	if spec, ok := sb.spawner.Due(now); ok {
		// configuration faults are logged by the block system
		_, _ = sb.session.Spawn(spec)
	}

	if sb.hasMouse {
		pos := sb.view.Unproject(float64(sb.mouseX)+0.5, float64(sb.mouseY)+0.5, parameter.ViewHitPlaneZ)
		if err := sb.session.RecordSample(sb.active, pos, now); err != nil {
			sb.logger.Warn().Err(err).Msg("sample rejected")
		}
	}

	sb.session.Step(now, nil)

	for _, f := range sb.queue.Consume() {
		sb.flashes = append(sb.flashes, flash{Feedback: f, until: now.Add(parameter.FlashDuration)})
	}
	live := sb.flashes[:0]
	for _, f := range sb.flashes {
		if now.Before(f.until) {
			live = append(live, f)
		}
	}
	sb.flashes = live
}

func (sb *Sandbox) draw() {
	frame := render.Frame{
		Blocks: sb.session.Blocks.Blocks(),
		Debris: sb.session.Blocks.Debris(),
		Active: sb.active,
	}
	for id := core.SaberID(0); id < core.SaberCount; id++ {
		if !sb.session.Sabers.Sampled(id) {
			continue
		}
		if snap, err := sb.session.Sabers.Snapshot(id); err == nil {
			frame.Sabers = append(frame.Sabers, snap)
		}
	}
	for _, f := range sb.flashes {
		frame.Flashes = append(frame.Flashes, f.Feedback)
	}

	render.Draw(sb.screen, sb.view, frame, sb.reg)
	sb.screen.Show()
}

func (sb *Sandbox) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.InputQueueSize)
	core.Go(func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if !sb.handleInput(ev) {
				return
			}

		case <-ticker.C:
			sb.tick()
			sb.draw()
		}
	}
}

func (sb *Sandbox) cleanup() {
	sb.sound.Cleanup()
	sb.screen.Fini()
	sb.logger.Info().
		Int64("frames", sb.session.Frame()).
		Int64("spawned", int64(sb.spawner.Count())).
		Msg("sandbox closed")
}

func main() {
	flags := pflag.NewFlagSet("vi-saber", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "config file (toml, yaml or json)")
	mute := flags.Bool("mute", false, "disable audio feedback")
	flags.Int64("seed", 1, "spawn sequence seed")
	flags.String("tracker", "window", "velocity tracker: window or interval")
	flags.String("policy", "retry", "failed swing policy: retry or terminal")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-file", "", "log file, empty disables logging")
	flags.Bool("metrics", false, "record OpenTelemetry instruments")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The screen owns the terminal; logs only go to a file
	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: cfg.Log.Console,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	sb, err := NewSandbox(cfg, *mute, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer sb.cleanup()

	sb.run()
}
