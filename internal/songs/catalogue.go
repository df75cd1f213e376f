package songs

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/duel/internal/game"
)

// Line is one line of the exchange shown before a song
type Line struct {
	Character string
	Text      string
	Left      bool // spoken from the opponent's side
}

type Meta struct {
	ID       string
	Name     string
	BPM      float64
	Dialogue []Line
}

type Week struct {
	ID          string
	Name        string
	Antagonist  string
	Color       string
	Description string
	Songs       []Meta
}

var Weeks = []Week{
	{
		ID:          "week1",
		Name:        "WEEK 1: Daddy Dearest",
		Antagonist:  "Dad",
		Color:       "#9333ea",
		Description: "Face your girlfriend's ex-rockstar father. He does not approve.",
		Songs: []Meta{
			{ID: "w1-1", Name: "Bopeebo", BPM: 100, Dialogue: []Line{
				{Character: "Dad", Text: "You think you have what it takes?", Left: true},
				{Character: "BF", Text: "Beep boop!"},
			}},
			{ID: "w1-2", Name: "Fresh", BPM: 120},
			{ID: "w1-3", Name: "Dadbattle", BPM: 140},
		},
	},
	{
		ID:          "week2",
		Name:        "WEEK 2: Spooky Month",
		Antagonist:  "Spooky",
		Color:       "#ea580c",
		Description: "Two kids in Halloween costumes want your candy, and your soul.",
		Songs: []Meta{
			{ID: "w2-1", Name: "Spookeez", BPM: 150, Dialogue: []Line{
				{Character: "Spooky", Text: "IT'S THE SPOOKY MONTH!", Left: true},
				{Character: "BF", Text: "Skiddoo bop?"},
			}},
			{ID: "w2-2", Name: "South", BPM: 165},
			{ID: "w2-3", Name: "Monster", BPM: 95},
		},
	},
	{
		ID:          "week3",
		Name:        "WEEK 3: Pico",
		Antagonist:  "Pico",
		Color:       "#22c55e",
		Description: "A mercenary hired by her father. Watch out for the gun.",
		Songs: []Meta{
			{ID: "w3-1", Name: "Pico", BPM: 150, Dialogue: []Line{
				{Character: "Pico", Text: "I'm gonna fill your face with lead, shorty.", Left: true},
				{Character: "BF", Text: "Go pico yeah yeah!"},
			}},
			{ID: "w3-2", Name: "Philly", BPM: 160},
			{ID: "w3-3", Name: "Blammed", BPM: 180},
		},
	},
	{
		ID:          "week4",
		Name:        "WEEK 4: Mommy Must Murder",
		Antagonist:  "Mom",
		Color:       "#db2777",
		Description: "Her mother is even worse. Dance on top of a moving limo!",
		Songs: []Meta{
			{ID: "w4-1", Name: "Satin Panties", BPM: 110, Dialogue: []Line{
				{Character: "Mom", Text: "You think you're good enough for my baby?", Left: true},
				{Character: "BF", Text: "Beep!"},
			}},
			{ID: "w4-2", Name: "High", BPM: 125},
			{ID: "w4-3", Name: "MILF", BPM: 180},
		},
	},
	{
		ID:          "week5",
		Name:        "WEEK 5: Red Snow",
		Antagonist:  "Monster",
		Color:       "#dc2626",
		Description: "Christmas is here, but Santa brought a man-eating demon.",
		Songs: []Meta{
			{ID: "w5-1", Name: "Cocoa", BPM: 100, Dialogue: []Line{
				{Character: "Mom", Text: "Let's sing Christmas carols!", Left: true},
				{Character: "Dad", Text: "AND KILL THE BOYFRIEND!", Left: true},
			}},
			{ID: "w5-2", Name: "Eggnog", BPM: 130},
			{ID: "w5-3", Name: "Winter Horrorland", BPM: 190, Dialogue: []Line{
				{Character: "Monster", Text: "I'll make broth from your bones...", Left: true},
				{Character: "BF", Text: "...beep?"},
			}},
		},
	},
}

// FindWeek looks a week up by id or by its 1 based number
func FindWeek(id string) (*Week, error) {
	for i := range Weeks {
		if strings.EqualFold(Weeks[i].ID, id) || fmt.Sprint(i+1) == id {
			return &Weeks[i], nil
		}
	}
	return nil, fmt.Errorf("unknown week %q", id)
}

// FindSong looks a song up by id or case insensitive name
func FindSong(id string) (*Week, *Meta, error) {
	for i := range Weeks {
		for j := range Weeks[i].Songs {
			m := &Weeks[i].Songs[j]
			if strings.EqualFold(m.ID, id) || strings.EqualFold(m.Name, id) {
				return &Weeks[i], m, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("unknown song %q", id)
}

// Freeplay is every song of every week in order
func Freeplay() []Meta {
	metas := []Meta{}
	for _, w := range Weeks {
		metas = append(metas, w.Songs...)
	}
	return metas
}

// DefaultDifficulty is used for freeplay when none is chosen
const DefaultDifficulty = game.Normal
