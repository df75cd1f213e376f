package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"git.lost.host/meutraa/duel/internal/audio"
	"git.lost.host/meutraa/duel/internal/clock"
	"git.lost.host/meutraa/duel/internal/config"
	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/input"
	"git.lost.host/meutraa/duel/internal/judge"
	"git.lost.host/meutraa/duel/internal/render"
	"git.lost.host/meutraa/duel/internal/schedule"
	"git.lost.host/meutraa/duel/internal/score"
	"git.lost.host/meutraa/duel/internal/session"
	"git.lost.host/meutraa/duel/internal/songs"
	"git.lost.host/meutraa/duel/internal/story"
	"git.lost.host/meutraa/duel/internal/synth"
	"git.lost.host/meutraa/duel/internal/theme"
	"github.com/faiface/beep"
)

var errQuit = errors.New("quit")

const volumeStep = 0.05

func main() {
	if err := run(); nil != err && err != errQuit {
		log.Fatalln(err)
	}
}

// playlist yields the songs to play in order
type playlist interface {
	Next() (*game.Song, *songs.Meta, bool)
	Record(score int, status game.Status)
}

// single plays one song once
type single struct {
	song *game.Song
	meta *songs.Meta
	done bool
}

func (s *single) Next() (*game.Song, *songs.Meta, bool) {
	if s.done {
		return nil, nil, false
	}
	return s.song, s.meta, true
}

func (s *single) Record(int, game.Status) {
	s.done = true
}

func loadPlaylist(d game.Difficulty, rng *rand.Rand) (playlist, error) {
	switch {
	case *config.Chart != "":
		psr := songs.ChartParser{}
		charts, err := psr.Parse(*config.Chart)
		if nil != err {
			return nil, err
		}
		if len(charts) == 0 {
			return nil, fmt.Errorf("no dance-single charts in %v", *config.Chart)
		}
		chosen := charts[0]
		for _, c := range charts {
			if c.Difficulty == d {
				chosen = c
				break
			}
		}
		return &single{song: chosen, meta: &songs.Meta{ID: chosen.ID, Name: chosen.Name, BPM: chosen.BPM}}, nil
	case *config.Week != "":
		w, err := songs.FindWeek(*config.Week)
		if nil != err {
			return nil, err
		}
		return story.NewRun(w, d, rng), nil
	default:
		id := *config.Song
		if id == "" {
			id = songs.Freeplay()[0].ID
		}
		w, meta, err := songs.FindSong(id)
		if nil != err {
			return nil, err
		}
		return &single{song: songs.Generate(*meta, w.Color, d, rng), meta: meta}, nil
	}
}

func listSongs(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, week := range songs.Weeks {
		fmt.Fprintf(tw, "%v) %v\t\t\n", i+1, week.Name)
		for _, s := range week.Songs {
			fmt.Fprintf(tw, "\t%v\t%v\t%.0f bpm\n", s.ID, s.Name, s.BPM)
		}
	}
	tw.Flush()
}

// replay re-scores a replay code and prints the result
func replay(pl playlist, settings game.Settings, cfg judge.Config) error {
	song, _, ok := pl.Next()
	if !ok {
		return errors.New("nothing to replay")
	}
	inputs, err := score.Decode(song, *config.Replay)
	if nil != err {
		return err
	}
	state, results := score.Replay(song, settings, inputs, cfg)
	stats := score.NewStats(results)
	fmt.Printf("%v (%v): %v with %v\n", song.Name, song.Difficulty, state.Status, state.Score)
	fmt.Printf("  combo %v, misses %v, health %v\n", state.Combo, state.MissCount, state.Health)
	fmt.Printf("  mean %.2f ms, stdev %.2f ms\n", stats.Mean, stats.Stdev)
	for i, j := range game.Judgements {
		fmt.Printf("  %v: %v\n", j.Name, stats.Counts[i])
	}
	return nil
}

func openInput() (input.Source, error) {
	if *config.Evdev != "" {
		return input.OpenEvdev(*config.Evdev)
	}
	return input.OpenTerminal()
}

func run() error {
	if err := config.Parse(os.Args[1:]); nil != err {
		return err
	}
	if *config.List {
		listSongs(os.Stdout)
		return nil
	}

	settings, err := config.Settings()
	if nil != err {
		return err
	}
	difficulty, err := config.GameDifficulty()
	if nil != err {
		return err
	}
	matcher, err := judge.MatcherByName(*config.Matcher)
	if nil != err {
		return err
	}
	seed := config.GenerationSeed()
	rng := rand.New(rand.NewSource(seed))

	pl, err := loadPlaylist(difficulty, rng)
	if nil != err {
		return err
	}
	if *config.Replay != "" {
		return replay(pl, settings, judge.Config{Matcher: matcher, Offset: *config.Offset})
	}

	if *config.LogFile != "" {
		f, err := os.Create(*config.LogFile)
		if nil != err {
			return fmt.Errorf("unable to open log: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	log.Println("seed", seed)

	deck := audio.NewDeck(beep.SampleRate(*config.SampleRate))
	out, err := audio.Open(deck, audio.Config{
		Buffer:   *config.Buffer,
		Gain:     *config.Volume,
		Headless: *config.Headless,
	})
	if nil != err {
		return fmt.Errorf("unable to open audio: %w", err)
	}
	defer out.Close()
	log.Println("audio backend", out.Backend())

	synthesizer := synth.New(deck, seed)

	src, err := openInput()
	if nil != err {
		return err
	}
	defer func() {
		if err := src.Close(); nil != err {
			log.Println("unable to close input", err)
		}
	}()

	r := render.New()
	if err := r.Init(); nil != err {
		return fmt.Errorf("unable to initialise terminal: %w", err)
	}
	defer func() {
		// Restore the terminal state
		r.Deinit()
	}()
	if *config.LogFile == "" {
		log.SetOutput(io.Discard)
	}

	leadIn := *config.LeadIn
	if leadIn == 0 {
		leadIn = session.NoLeadIn
	}

	p := NewProgram(r, theme.New(settings.Skin))
	ended := make(chan struct{}, 1)
	sess := session.New(session.Config{
		Clock:       clock.NewAudioClock(deck),
		Synth:       synthesizer,
		TickPeriod:  *config.Tick,
		FramePeriod: *config.FramePeriod,
		LeadIn:      leadIn,
		Window:      *config.Window,
		Matcher:     matcher,
		Offset:      *config.Offset,
		Logger:      log.New(log.Writer(), "session: ", log.LstdFlags),
	}, p.Hooks(func(int, game.Status) {
		select {
		case ended <- struct{}{}:
		default:
		}
	}))

	ui := make(chan input.Event, 128)
	go forward(src, sess, out, ui)

	// Nothing sounds until the player has pressed a key
	p.RenderText("DUEL", "", "press enter to start")
	r.Flush()
	if !waitForEnter(ui, p, nil) {
		return errQuit
	}
	out.Resume()
	synthesizer.EmitSFX(synth.Confirm)

	menuClock := clock.NewAudioClock(deck)
	menu := schedule.New(menuClock, synthesizer, nil, schedule.MenuBPM, schedule.MenuPattern)
	menu.Window = *config.Window

	for {
		song, meta, ok := pl.Next()
		if !ok {
			break
		}

		ctx, stopMenu := context.WithCancel(context.Background())
		menuDone := make(chan struct{})
		menuClock.Start(*config.LeadIn)
		go func() {
			defer close(menuDone)
			menu.Run(ctx, *config.Tick)
		}()

		for _, line := range meta.Dialogue {
			line := line
			if !waitForEnter(ui, p, func() { p.RenderDialogue(meta, line) }) {
				stopMenu()
				return errQuit
			}
			synthesizer.EmitSFX(synth.Scroll)
		}
		stopMenu()
		<-menuDone
		menuClock.Stop()

		state, err := play(p, sess, song, settings, ui, ended)
		if nil != err {
			synthesizer.EmitSFX(synth.Back)
			return err
		}
		pl.Record(state.Score, state.Status)

		stats := score.NewStats(sess.Results())
		code, err := score.Encode(song, sess.Journal())
		if nil != err {
			log.Println(err)
		} else {
			log.Printf("replay %v: %v", song.ID, code)
		}
		if !waitForEnter(ui, p, func() { p.RenderResults(song, state, stats, code) }) {
			return errQuit
		}
		synthesizer.EmitSFX(synth.Confirm)
	}

	if week, ok := pl.(*story.Run); ok {
		headline := "WEEK COMPLETE!"
		if week.Status == game.GameOver {
			headline = "GAME OVER"
		}
		waitForEnter(ui, p, func() {
			p.RenderText(headline, week.Week.Name, "", fmt.Sprintf("Total score: %v", week.Total), "", "[enter]")
		})
	}
	return nil
}

// forward delivers every key to the session immediately, so judging never
// waits on a render frame, and copies it to the menus
func forward(src input.Source, sess *session.Session, out *audio.Output, ui chan<- input.Event) {
	defer close(ui)
	for ev := range src.Events() {
		if ev.Pressed {
			nudgeVolume(out, ev.Key)
			sess.KeyDown(ev.Key)
		} else if ev.Released {
			sess.KeyUp(ev.Key)
		}
		select {
		case ui <- ev:
		default:
		}
	}
}

// nudgeVolume steps the master gain on - and +
func nudgeVolume(out *audio.Output, key string) {
	var gain float64
	switch key {
	case "-":
		gain = out.Gain() - volumeStep
	case "+", "=":
		gain = out.Gain() + volumeStep
	default:
		return
	}
	out.SetGain(math.Max(0, math.Min(1, gain)))
	log.Printf("volume %.2f", out.Gain())
}

// waitForEnter draws until enter is pressed, reporting false on escape
func waitForEnter(ui <-chan input.Event, p *Program, draw func()) bool {
	ok := true
	p.Renderer.RenderLoop(*config.FramePeriod, func(time.Time) bool {
		if nil != draw {
			draw()
		}
		for i := len(ui); i > 0; i-- {
			ev, open := <-ui
			if !open {
				ok = false
				return false
			}
			if !ev.Pressed {
				continue
			}
			switch ev.Key {
			case input.KeyEnter, " ":
				return false
			case input.KeyEscape, input.KeyQuit:
				ok = false
				return false
			}
		}
		return true
	})
	return ok
}

// play runs one song until it ends or the player quits
func play(p *Program, sess *session.Session, song *game.Song, settings game.Settings, ui <-chan input.Event, ended <-chan struct{}) (game.State, error) {
	p.Reset()
	select {
	case <-ended:
	default:
	}
	if err := sess.Start(song, settings); nil != err {
		return game.State{}, err
	}

	quit := false
	behind := time.Duration(p.hitRow) * rowDuration
	ahead := time.Duration(p.rows) * rowDuration
	p.Renderer.RenderLoop(*config.FramePeriod, func(time.Time) bool {
		for i := len(ui); i > 0; i-- {
			ev := <-ui
			if dir, ok := settings.Keys.Direction(ev.Key); ok {
				p.Held(dir, ev.Pressed)
			}
			if ev.Pressed && (ev.Key == input.KeyEscape || ev.Key == input.KeyQuit) {
				quit = true
				return false
			}
		}
		select {
		case <-ended:
			return false
		default:
		}
		snap, running := sess.Snapshot(behind, ahead)
		if !running {
			return false
		}
		p.RenderSong(snap)
		return true
	})

	if quit {
		sess.Stop()
		return sess.State(), errQuit
	}
	sess.Wait()
	return sess.State(), nil
}
