package game

type Status uint8

const (
	Playing Status = iota
	Won
	GameOver
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case GameOver:
		return "gameover"
	}
	return "playing"
}

func (s Status) Terminal() bool {
	return s != Playing
}

const (
	StartHealth = 50
	MaxHealth   = 100

	MissHealthPenalty  = 5
	GhostHealthPenalty = 2
	GhostScorePenalty  = 10
)

type State struct {
	Health    int
	Score     int
	Combo     int
	MissCount int
	Status    Status
}

func NewState() State {
	return State{Health: StartHealth, Status: Playing}
}

// AddHealth applies d and clamps the result to [0, MaxHealth]
func (s *State) AddHealth(d int) {
	s.Health += d
	if s.Health > MaxHealth {
		s.Health = MaxHealth
	} else if s.Health < 0 {
		s.Health = 0
	}
}

func (s *State) Hit(j Judgement) {
	s.Score += j.Score
	s.Combo++
	s.AddHealth(j.Health)
}

// Miss is a note that expired without input
func (s *State) Miss() {
	s.AddHealth(-MissHealthPenalty)
	s.Combo = 0
	s.MissCount++
}

// GhostTap is a strict mode press with nothing in range
func (s *State) GhostTap() {
	s.Score -= GhostScorePenalty
	if s.Score < 0 {
		s.Score = 0
	}
	s.AddHealth(-GhostHealthPenalty)
	s.Combo = 0
	s.MissCount++
}
