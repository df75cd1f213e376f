package main

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/judge"
	"git.lost.host/meutraa/duel/internal/render"
	"git.lost.host/meutraa/duel/internal/score"
	"git.lost.host/meutraa/duel/internal/session"
	"git.lost.host/meutraa/duel/internal/songs"
	"git.lost.host/meutraa/duel/internal/theme"
)

const (
	laneSpacing     = 4
	healthBarWidth  = 40
	decorationLife  = 30 // frames
	receptorFlash   = 8
	rowDuration     = 40 * time.Millisecond
	hookEventBuffer = 256
)

// Program draws the game. Hooks arrive on the session goroutine and are
// handed to the render loop through a channel, the renderer is only ever
// touched from the render loop.
type Program struct {
	Renderer render.Renderer
	Theme    theme.Theme

	columns, rows int
	hitRow        int
	lanes         [2][len(game.Directions)]int // per owner
	sideCol       int

	events chan interface{}
	stats  *score.Stats
	held   [len(game.Directions)]bool
}

func NewProgram(r render.Renderer, th theme.Theme) *Program {
	p := &Program{
		Renderer: r,
		Theme:    th,
		events:   make(chan interface{}, hookEventBuffer),
		stats:    score.NewStats(nil),
	}
	p.Resize()
	return p
}

func (p *Program) Resize() {
	p.columns, p.rows = p.Renderer.Size()
	p.hitRow = 4
	for i := range game.Directions {
		offset := (2*i - 3) * laneSpacing / 2
		p.lanes[game.Opponent][i] = p.columns/4 + offset
		p.lanes[game.Player][i] = 3*p.columns/4 + offset
	}
	p.sideCol = p.columns/2 - 8
	if p.sideCol < 2 {
		p.sideCol = 2
	}
}

// Hooks forwards session events to the render loop, dropping them if it falls behind
func (p *Program) Hooks(end func(score int, status game.Status)) judge.Hooks {
	push := func(ev interface{}) {
		select {
		case p.events <- ev:
		default:
		}
	}
	return judge.Hooks{
		Pose:      func(ev judge.PoseEvent) { push(ev) },
		Judgement: func(r judge.Result) { push(r) },
		End:       end,
	}
}

// Reset clears per song statistics
func (p *Program) Reset() {
	p.stats = score.NewStats(nil)
	p.held = [len(game.Directions)]bool{}
	for {
		select {
		case <-p.events:
		default:
			return
		}
	}
}

func (p *Program) Held(dir game.Direction, held bool) {
	if int(dir) < len(p.held) {
		p.held[dir] = held
	}
}

func (p *Program) drainEvents() {
	for i := len(p.events); i > 0; i-- {
		switch ev := (<-p.events).(type) {
		case judge.Result:
			p.stats.Add(ev)
			p.decorate(ev)
		case judge.PoseEvent:
			// Flash the receptor the opponent just sang
			if ev.Actor == judge.OpponentActor && ev.Kind == judge.HitPose {
				col := uint16(p.lanes[game.Opponent][ev.Direction])
				p.Renderer.AddDecoration(col, uint16(p.hitRow), p.Theme.RenderHitField(ev.Direction, true), receptorFlash)
			}
		}
	}
}

func (p *Program) decorate(r judge.Result) {
	col := uint16(p.lanes[game.Player][r.Direction])
	row := uint16(p.hitRow - 2)
	var name string
	switch r.Kind {
	case judge.Hit:
		name = r.Judgement.Name
	case judge.Miss:
		name = "miss"
	case judge.Ghost:
		name = "ghost"
	default:
		return
	}
	label := strings.ToUpper(name)
	c := p.Theme.JudgementColor(name)
	p.Renderer.AddDecoration(col-uint16(len(label)/2), row,
		fmt.Sprintf("\033[1;38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, label), decorationLife)
}

// RenderSong draws one frame of a running song
func (p *Program) RenderSong(snap session.Snapshot) {
	r := p.Renderer
	r.Clear()
	p.drainEvents()

	for owner := range p.lanes {
		for i, dir := range game.Directions {
			held := owner == int(game.Player) && p.held[i]
			r.Fill(uint16(p.hitRow), uint16(p.lanes[owner][i]), p.Theme.RenderHitField(dir, held))
		}
	}

	for _, n := range snap.Notes {
		if n.Hit() {
			continue
		}
		row := p.hitRow + int((n.Time-snap.Now)/rowDuration)
		if row < 1 || row > p.rows-3 {
			continue
		}
		r.Fill(uint16(row), uint16(p.lanes[n.Owner][n.Direction]), p.Theme.RenderNote(n.Direction, n.Owner))
	}

	r.Fill(uint16(p.hitRow+2), uint16(p.lanes[game.Opponent][0]), poseLabel(snap.Opponent))
	r.Fill(uint16(p.hitRow+2), uint16(p.lanes[game.Player][0]), poseLabel(snap.Player))

	s := snap.State
	beat := " "
	if snap.Beat >= 0 && snap.Beat%2 == 0 {
		beat = "♪"
	}
	side := uint16(p.sideCol)
	r.Fill(2, side, fmt.Sprintf("%v %v", snap.Song.Name, beat))
	r.Fill(3, side, fmt.Sprintf("%v  %.0f bpm", snap.Song.Difficulty, snap.Song.BPM))
	r.Fill(6, side, fmt.Sprintf("  Score: %7v", s.Score))
	r.Fill(7, side, fmt.Sprintf("  Combo: %7v", s.Combo))
	r.Fill(8, side, fmt.Sprintf(" Misses: %7v", s.MissCount))
	r.Fill(10, side, fmt.Sprintf("   Mean: %7.2f ms", p.stats.Mean))
	r.Fill(11, side, fmt.Sprintf("  Stdev: %7.2f ms", p.stats.Stdev))
	for i, j := range game.Judgements {
		c := p.Theme.JudgementColor(j.Name)
		r.FillColor(uint16(13+i), side, c, fmt.Sprintf("%7v: %5v", j.Name, p.stats.Counts[i]))
	}

	r.Fill(uint16(p.rows-1), uint16(p.columns/2-healthBarWidth/2), healthBar(s.Health))
}

func poseLabel(ev judge.PoseEvent) string {
	switch ev.Kind {
	case judge.HitPose:
		return fmt.Sprintf("%-8v", "♪ "+ev.Direction.String())
	case judge.MissPose:
		return "\033[1;31mmiss    \033[0m"
	}
	return "        "
}

// healthBar fills from the right with the player's share, like a tug of war
func healthBar(health int) string {
	filled := health * healthBarWidth / game.MaxHealth
	return "\033[31m" + strings.Repeat("█", healthBarWidth-filled) +
		"\033[32m" + strings.Repeat("█", filled) + "\033[0m"
}

// RenderText draws centred lines, used for every menu screen
func (p *Program) RenderText(lines ...string) {
	r := p.Renderer
	r.Clear()
	top := p.rows/2 - len(lines)/2
	for i, l := range lines {
		col := p.columns/2 - len([]rune(l))/2
		if col < 1 {
			col = 1
		}
		r.Fill(uint16(top+i), uint16(col), l)
	}
}

func (p *Program) RenderDialogue(meta *songs.Meta, line songs.Line) {
	speaker := line.Character + ":"
	if !line.Left {
		speaker = "  " + speaker
	}
	p.RenderText(meta.Name, "", speaker, line.Text, "", "[enter]")
}

func (p *Program) RenderResults(song *game.Song, state game.State, stats *score.Stats, code string) {
	headline := "SONG COMPLETE!"
	if state.Status == game.GameOver {
		headline = "GAME OVER"
	}
	lines := []string{
		headline,
		song.Name,
		"",
		fmt.Sprintf("Score: %v", state.Score),
		fmt.Sprintf("Misses: %v  Ghost taps: %v", stats.Misses, stats.Ghosts),
		fmt.Sprintf("Mean: %.2f ms  Stdev: %.2f ms", stats.Mean, stats.Stdev),
	}
	for i, j := range game.Judgements {
		lines = append(lines, fmt.Sprintf("%v: %v", j.Name, stats.Counts[i]))
	}
	if code != "" {
		lines = append(lines, "", "Replay code written to the log")
	}
	lines = append(lines, "", "[enter]")
	p.RenderText(lines...)
}
