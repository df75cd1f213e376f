// Package session owns the lifecycle of one song being played: it runs the
// look-ahead scheduler and the judgment engine against one timeline and one
// clock, and forwards raw key events to the judge.
package session

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"git.lost.host/meutraa/duel/internal/clock"
	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/judge"
	"git.lost.host/meutraa/duel/internal/schedule"
	"git.lost.host/meutraa/duel/internal/score"
	"git.lost.host/meutraa/duel/internal/synth"
)

const (
	DefaultFramePeriod = time.Second / 60
	DefaultLeadIn      = 100 * time.Millisecond
	NoLeadIn           = time.Duration(-1) // Starts song time at zero immediately

	feedbackLength = 100 * time.Millisecond
	keyBuffer      = 128
)

var (
	ErrRunning = errors.New("session already running")
	ErrNoSong  = errors.New("no song to play")
)

type Config struct {
	Clock clock.Source
	Synth synth.Synthesizer

	TickPeriod  time.Duration // Scheduler wake up period
	FramePeriod time.Duration // Judgment frame period
	LeadIn      time.Duration // Delay between Start and song time zero, NoLeadIn for none
	Window      time.Duration // Scheduler look-ahead

	Matcher judge.Matcher
	Offset  time.Duration
	Grace   time.Duration
	Pattern schedule.Pattern // Backing beat, schedule.GamePattern when nil

	Logger *log.Logger
}

func (c *Config) defaults() {
	if c.TickPeriod <= 0 {
		c.TickPeriod = schedule.DefaultPeriod
	}
	if c.FramePeriod <= 0 {
		c.FramePeriod = DefaultFramePeriod
	}
	switch {
	case c.LeadIn == 0:
		c.LeadIn = DefaultLeadIn
	case c.LeadIn < 0:
		c.LeadIn = 0
	}
	if c.Window <= 0 {
		c.Window = schedule.DefaultWindow
	}
	if c.Window < c.TickPeriod {
		c.Window = c.TickPeriod
	}
	if c.Pattern == nil {
		c.Pattern = schedule.GamePattern
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
}

type key struct {
	dir      game.Direction
	released bool
}

// run is the state of one started song
type run struct {
	song      *game.Song
	settings  game.Settings
	engine    *judge.Engine
	scheduler *schedule.Scheduler

	keys     chan key
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	pending []func() // hooks waiting for the lock to be released
	ended   bool
	score   int
	status  game.Status
}

func (r *run) queue(f func()) {
	r.pending = append(r.pending, f)
}

// Session is the explicit owner of the game engine. Hooks run on the
// session goroutine without the lock held and must not call Stop, except
// End which runs after the session has fully stopped.
type Session struct {
	cfg   Config
	hooks judge.Hooks

	journal score.Journal

	mu      sync.Mutex
	current *run
	last    game.State
	results []judge.Result
}

func New(cfg Config, hooks judge.Hooks) *Session {
	cfg.defaults()
	return &Session{cfg: cfg, hooks: hooks, last: game.NewState()}
}

// Start begins playing song. The clock epoch is fixed LeadIn from now, or on
// the first tick after the audio device becomes available.
func (s *Session) Start(song *game.Song, settings game.Settings) error {
	if song == nil {
		return ErrNoSong
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return ErrRunning
	}

	timeline := game.NewTimeline(song.Notes)
	r := &run{
		song:     song,
		settings: settings,
		keys:     make(chan key, keyBuffer),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	r.engine = judge.New(s.cfg.Clock, timeline, song.BPM, settings, judge.Config{
		Matcher: s.cfg.Matcher,
		Offset:  s.cfg.Offset,
		Grace:   s.cfg.Grace,
	}, s.intercept(r))
	r.scheduler = schedule.New(s.cfg.Clock, s.cfg.Synth, timeline, song.BPM, s.cfg.Pattern)
	r.scheduler.Window = s.cfg.Window

	s.journal.Reset()
	s.results = nil
	s.cfg.Clock.Stop()
	s.cfg.Clock.Start(s.cfg.LeadIn)
	if !s.cfg.Clock.Active() {
		s.cfg.Logger.Println("audio clock unavailable, waiting for device")
	}
	s.current = r

	s.cfg.Logger.Printf("starting %q (%v, %v bpm, %v player notes of %v)", song.Name, song.Difficulty, song.BPM, timeline.Count(game.Player), timeline.Len())
	go s.loop(r)
	return nil
}

// intercept wraps the caller's hooks so they are queued while the lock is held
func (s *Session) intercept(r *run) judge.Hooks {
	return judge.Hooks{
		Pose: func(p judge.PoseEvent) {
			if s.hooks.Pose != nil {
				r.queue(func() { s.hooks.Pose(p) })
			}
		},
		Beat: func(beat int) {
			if s.hooks.Beat != nil {
				r.queue(func() { s.hooks.Beat(beat) })
			}
		},
		Judgement: func(res judge.Result) {
			s.results = append(s.results, res)
			if res.Kind == judge.Hit {
				c := s.cfg.Clock
				s.cfg.Synth.EmitTone(c.At(c.Now()), synth.Frequency(res.Direction, game.Player), synth.Square, feedbackLength)
			}
			if s.hooks.Judgement != nil {
				r.queue(func() { s.hooks.Judgement(res) })
			}
		},
		End: func(score int, status game.Status) {
			r.ended = true
			r.score, r.status = score, status
		},
	}
}

func (s *Session) loop(r *run) {
	tick := time.NewTicker(s.cfg.TickPeriod)
	frame := time.NewTicker(s.cfg.FramePeriod)
	defer tick.Stop()
	defer frame.Stop()

	s.step(r, s.tick(r))
	for !r.ended {
		select {
		case <-r.stop:
			s.finish(r)
			return
		case <-tick.C:
			s.step(r, s.tick(r))
		case <-frame.C:
			s.step(r, r.engine.Frame)
		case k := <-r.keys:
			s.step(r, func() { s.key(r, k) })
		}
	}
	s.finish(r)
}

func (s *Session) tick(r *run) func() {
	return func() {
		if !s.cfg.Clock.Active() {
			s.cfg.Clock.Start(s.cfg.LeadIn)
			if s.cfg.Clock.Active() {
				s.cfg.Logger.Println("audio clock available, starting playback")
			}
		}
		r.scheduler.Tick()
	}
}

// step runs f under the lock, then delivers the hooks it queued
func (s *Session) step(r *run, f func()) {
	s.mu.Lock()
	f()
	pending := r.pending
	r.pending = nil
	s.mu.Unlock()

	for _, p := range pending {
		p()
	}
}

func (s *Session) key(r *run, k key) {
	in := game.Input{Direction: k.dir, Time: s.cfg.Clock.Now(), Released: k.released}
	if k.released {
		r.engine.KeyUp(k.dir)
		s.journal.Record(in)
		return
	}
	if _, ok := r.engine.KeyDown(k.dir); ok {
		s.journal.Record(in)
	}
}

func (s *Session) finish(r *run) {
	s.mu.Lock()
	r.scheduler.Reset()
	s.cfg.Clock.Stop()
	s.last = r.engine.State()
	s.current = nil
	s.mu.Unlock()
	close(r.done)

	if r.ended {
		s.cfg.Logger.Printf("%q ended: %v with %v", r.song.Name, r.status, r.score)
		if s.hooks.End != nil {
			s.hooks.End(r.score, r.status)
		}
	} else {
		s.cfg.Logger.Printf("%q stopped", r.song.Name)
	}
}

// Stop halts the running song and waits for the session goroutine to exit.
// Already scheduled sounds still play out.
func (s *Session) Stop() {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r == nil {
		return
	}
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

// Wait blocks until the running song ends or is stopped
func (s *Session) Wait() {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r != nil {
		<-r.done
	}
}

func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *Session) KeyDown(raw string) {
	s.send(raw, false)
}

func (s *Session) KeyUp(raw string) {
	s.send(raw, true)
}

func (s *Session) send(raw string, released bool) {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r == nil {
		return
	}
	dir, ok := r.settings.Keys.Direction(raw)
	if !ok {
		return
	}
	select {
	case r.keys <- key{dir: dir, released: released}:
	default:
		s.cfg.Logger.Println("key buffer full, dropping", raw)
	}
}

// State is the live game state, or the final state of the last song
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return s.current.engine.State()
	}
	return s.last
}

// Journal returns the inputs judged during the current or last song
func (s *Session) Journal() []game.Input {
	return s.journal.Inputs()
}

// Results returns every judgement of the current or last song
func (s *Session) Results() []judge.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := make([]judge.Result, len(s.results))
	copy(rs, s.results)
	return rs
}
