package judge

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
)

// PoseDuration is how long a hit or miss pose is shown before reverting to idle
const PoseDuration = 200 * time.Millisecond

type Actor uint8

const (
	PlayerActor Actor = iota
	OpponentActor
	actorCount
)

func (a Actor) String() string {
	if a == OpponentActor {
		return "opponent"
	}
	return "player"
}

type PoseKind uint8

const (
	Idle PoseKind = iota
	HitPose
	MissPose
)

type PoseEvent struct {
	Actor     Actor
	Kind      PoseKind
	Direction game.Direction // only meaningful for HitPose
}

func (p PoseEvent) String() string {
	switch p.Kind {
	case HitPose:
		return fmt.Sprintf("%v hit %v", p.Actor, p.Direction)
	case MissPose:
		return fmt.Sprintf("%v miss", p.Actor)
	}
	return fmt.Sprintf("%v idle", p.Actor)
}

type poses struct {
	current  [actorCount]PoseEvent
	deadline [actorCount]time.Duration
}

func newPoses() poses {
	p := poses{}
	for a := range p.current {
		p.current[a] = PoseEvent{Actor: Actor(a)}
	}
	return p
}

// set replaces the actor's pose, pushing the revert deadline out again
func (p *poses) set(ev PoseEvent, t time.Duration) PoseEvent {
	p.current[ev.Actor] = ev
	p.deadline[ev.Actor] = t + PoseDuration
	return ev
}

// expire reverts every pose whose deadline has passed and returns the reverts
func (p *poses) expire(t time.Duration) []PoseEvent {
	var reverted []PoseEvent
	for a := range p.current {
		if p.current[a].Kind != Idle && t >= p.deadline[a] {
			p.current[a] = PoseEvent{Actor: Actor(a)}
			reverted = append(reverted, p.current[a])
		}
	}
	return reverted
}
