package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/stealth/model"
	"github.com/zucenko/stealth/sim"
)

type Game struct {
	screen    tcell.Screen
	game      *sim.Game
	calls     chan func()
	result    *model.Result
	audioInit bool
}

func NewGame(screen tcell.Screen, cfg sim.Config, rng sim.RandSource) *Game {
	g := &Game{
		screen: screen,
		calls:  make(chan func(), 16),
	}
	clock := sim.NewTickerClock(cfg.TickInterval(), func(fn func()) { g.calls <- fn })
	g.game = sim.NewGame(cfg, clock, rng)
	g.game.OnResult(func(r model.Result) {
		g.result = &r
		g.playResultSound(r)
	})
	return g
}

func (g *Game) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		g.audioInit = true
	}
	return err
}

func (g *Game) playResultSound(r model.Result) {
	if !g.audioInit {
		return
	}
	freq := 220
	switch {
	case r.Won:
		freq = 880
	case r.Message == model.MSG_TIMEOUT:
		freq = 440
	}
	sampleRate := beep.SampleRate(44100)
	tone, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		log.Warnf("tone %d: %v", freq, err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(250*time.Millisecond), tone))
}

// directionForKey maps arrows and WASD.
func directionForKey(key tcell.Key, r rune) (model.Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return model.DIR_UP, true
	case tcell.KeyDown:
		return model.DIR_DOWN, true
	case tcell.KeyLeft:
		return model.DIR_LEFT, true
	case tcell.KeyRight:
		return model.DIR_RIGHT, true
	case tcell.KeyRune:
		switch r {
		case 'w':
			return model.DIR_UP, true
		case 's':
			return model.DIR_DOWN, true
		case 'a':
			return model.DIR_LEFT, true
		case 'd':
			return model.DIR_RIGHT, true
		}
	}
	return 0, false
}

// handleInput returns false when the player quits.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			g.start()
			return true
		}
		if d, ok := directionForKey(ev.Key(), ev.Rune()); ok {
			g.game.MovePlayer(d)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) start() {
	g.result = nil
	g.game.StartSession()
}

func (g *Game) run() {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	g.draw()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case fn := <-g.calls:
			fn()
		}
		g.draw()
	}
}

func (g *Game) cleanup() {
	g.game.Close()
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "scenario yaml (default: reference scenario)")
	logPath := flag.String("log", "", "log file, the terminal is taken by the game")
	seed := flag.Int64("seed", 0, "guard seed, 0 for time based")
	mute := flag.Bool("mute", false, "no sound")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}

	g := NewGame(screen, cfg, sim.NewRand(*seed))
	if !*mute {
		if err := g.initAudio(); err != nil {
			log.Warnf("audio disabled: %v", err)
		}
	}
	defer g.cleanup()
	g.run()
}
