// Package judge classifies player input against the note timeline and keeps
// the game state, reading song time from the same clock the audio uses.
package judge

import (
	"time"

	"git.lost.host/meutraa/duel/internal/clock"
	"git.lost.host/meutraa/duel/internal/game"
)

// DefaultGrace is how long after the last note a song is considered complete
const DefaultGrace = 2000 * time.Millisecond

type Config struct {
	Matcher Matcher       // FirstByTime when nil
	Offset  time.Duration // Added to every clock reading, for input latency
	Grace   time.Duration // DefaultGrace when zero
}

type ResultKind uint8

const (
	Hit ResultKind = iota
	Miss
	Ghost
	Absorbed // a lenient ghost tap, no state change
)

func (k ResultKind) String() string {
	switch k {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case Ghost:
		return "ghost"
	}
	return "absorbed"
}

type Result struct {
	Kind      ResultKind
	Time      time.Duration
	Direction game.Direction
	Note      *game.Note    // nil for ghost taps
	Offset    time.Duration // Input time minus note time, hits only
	Tier      int           // Index into game.Judgements, hits only
	Judgement game.Judgement
}

// Accuracy is the absolute timing error of a hit
func (r Result) Accuracy() time.Duration {
	return abs(r.Offset)
}

// Hooks are optional observers, called synchronously from Frame and KeyDown
type Hooks struct {
	Pose      func(PoseEvent)
	Beat      func(beat int)
	Judgement func(Result)
	End       func(score int, status game.Status)
}

// Engine is not safe for concurrent use, callers serialize Frame and input
type Engine struct {
	clock    clock.Source
	timeline *game.Timeline
	settings game.Settings
	matcher  Matcher
	offset   time.Duration
	grace    time.Duration
	spb      time.Duration
	hooks    Hooks

	state   game.State
	held    [len(game.Directions)]bool
	poses   poses
	beat    int
	settled int // notes before this index are all resolved
}

func New(c clock.Source, timeline *game.Timeline, bpm float64, settings game.Settings, cfg Config, hooks Hooks) *Engine {
	e := &Engine{
		clock:    c,
		timeline: timeline,
		settings: settings,
		matcher:  cfg.Matcher,
		offset:   cfg.Offset,
		grace:    cfg.Grace,
		spb:      game.BeatLength(bpm),
		hooks:    hooks,
		state:    game.NewState(),
		poses:    newPoses(),
		beat:     -1,
	}
	if e.matcher == nil {
		e.matcher = FirstByTime
	}
	if e.grace == 0 {
		e.grace = DefaultGrace
	}
	return e
}

func (e *Engine) Now() time.Duration {
	return e.clock.Now() + e.offset
}

func (e *Engine) State() game.State {
	return e.state
}

func (e *Engine) Status() game.Status {
	return e.state.Status
}

func (e *Engine) Timeline() *game.Timeline {
	return e.timeline
}

func (e *Engine) Pose(a Actor) PoseEvent {
	return e.poses.current[a]
}

// Beat is the index of the last beat boundary crossed, -1 before the first
func (e *Engine) Beat() int {
	return e.beat
}

func (e *Engine) playing() bool {
	return e.clock.Active() && !e.state.Status.Terminal()
}

// Frame advances the judgment by one rendered frame
func (e *Engine) Frame() {
	if !e.playing() {
		return
	}
	t := e.Now()

	if t > e.timeline.End()+e.grace {
		e.finish(game.Won)
		return
	}

	if e.spb > 0 && t >= 0 {
		if beat := int(t / e.spb); beat > e.beat {
			e.beat = beat
			if e.hooks.Beat != nil {
				e.hooks.Beat(beat)
			}
		}
	}

	for _, ev := range e.poses.expire(t) {
		e.emitPose(ev)
	}

	e.sweep(t)

	if e.state.Health <= 0 {
		e.finish(game.GameOver)
	}
}

// sweep auto-plays due opponent notes and misses expired player notes
func (e *Engine) sweep(t time.Duration) {
	for i := e.settled; i < e.timeline.Len() && e.state.Health > 0; i++ {
		n := e.timeline.At(i)
		if n.Time > t {
			break
		}
		switch {
		case n.Resolved():
		case n.Owner == game.Opponent:
			n.MarkHit()
			e.setPose(PoseEvent{Actor: OpponentActor, Kind: HitPose, Direction: n.Direction}, t)
		case n.Time+game.HitWindow < t:
			n.MarkMissed()
			e.state.Miss()
			e.setPose(PoseEvent{Actor: PlayerActor, Kind: MissPose}, t)
			e.emitResult(Result{Kind: Miss, Time: t, Direction: n.Direction, Note: n, Tier: -1})
		}
	}
	for e.settled < e.timeline.Len() && e.timeline.At(e.settled).Resolved() {
		e.settled++
	}
}

// KeyDown judges a press in lane dir unless that lane is already held
func (e *Engine) KeyDown(dir game.Direction) (Result, bool) {
	if !e.playing() || int(dir) >= len(e.held) || e.held[dir] {
		return Result{}, false
	}
	e.held[dir] = true
	return e.CheckHit(dir), true
}

func (e *Engine) KeyUp(dir game.Direction) {
	if int(dir) < len(e.held) {
		e.held[dir] = false
	}
}

// CheckHit resolves an input in lane dir at the current clock reading
func (e *Engine) CheckHit(dir game.Direction) Result {
	t := e.Now()
	r := Result{Time: t, Direction: dir, Tier: -1}
	if !e.playing() {
		r.Kind = Absorbed
		return r
	}

	if n := e.matcher(e.timeline, dir, t); n != nil && n.MarkHit() {
		r.Kind = Hit
		r.Note = n
		r.Offset = t - n.Time
		r.Tier, r.Judgement = game.Judge(r.Accuracy())
		e.state.Hit(r.Judgement)
		e.setPose(PoseEvent{Actor: PlayerActor, Kind: HitPose, Direction: dir}, t)
		e.emitResult(r)
		return r
	}

	if e.settings.Lenient {
		// The player still sings the lane, only the penalty is waived
		r.Kind = Absorbed
		e.setPose(PoseEvent{Actor: PlayerActor, Kind: HitPose, Direction: dir}, t)
		return r
	}

	r.Kind = Ghost
	e.state.GhostTap()
	e.setPose(PoseEvent{Actor: PlayerActor, Kind: MissPose}, t)
	e.emitResult(r)
	if e.state.Health <= 0 {
		e.finish(game.GameOver)
	}
	return r
}

func (e *Engine) finish(status game.Status) {
	if e.state.Status.Terminal() {
		return
	}
	e.state.Status = status
	if e.hooks.End != nil {
		e.hooks.End(e.state.Score, status)
	}
}

func (e *Engine) setPose(ev PoseEvent, t time.Duration) {
	e.emitPose(e.poses.set(ev, t))
}

func (e *Engine) emitPose(ev PoseEvent) {
	if e.hooks.Pose != nil {
		e.hooks.Pose(ev)
	}
}

func (e *Engine) emitResult(r Result) {
	if e.hooks.Judgement != nil {
		e.hooks.Judgement(r)
	}
}
