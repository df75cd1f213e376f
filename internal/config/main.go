package config

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("duel", "A terminal rhythm duel with synthesized music").Version("0.3.0")

	Song       = app.Flag("song", "Song id or name to play").Short('s').String()
	Week       = app.Flag("week", "Play a week in story mode, by id or number").Short('w').String()
	Chart      = app.Flag("chart", "StepMania .sm chart to play instead of a generated song").Short('c').ExistingFile()
	Difficulty = app.Flag("difficulty", "Easy, Normal, Hard or Expert").Default("Normal").Short('d').String()
	Seed       = app.Flag("seed", "Song generation seed, 0 for random").Default("0").Int64()
	List       = app.Flag("list", "List the songs and exit").Short('l').Bool()

	Lenient = app.Flag("lenient", "Do not penalise taps with no note in range").Bool()
	Skin    = app.Flag("skin", "Note skin: Normal, Circle, Futuristic or Crystal").Default("Normal").String()
	keys    = app.Flag("keys", "Comma separated keys for left, down, up and right").Default("ArrowLeft,ArrowDown,ArrowUp,ArrowRight").Short('k').String()
	Evdev   = app.Flag("evdev", "Read keys from this input device for real key releases").String()

	SampleRate = app.Flag("sample-rate", "Audio sample rate").Default("44100").Int()
	Buffer     = app.Flag("buffer", "Audio buffer duration").Default("10ms").Duration()
	Volume     = app.Flag("volume", "Master gain").Default("0.3").Float64()
	Headless   = app.Flag("headless", "Run the audio clock without a sound device").Bool()

	Offset      = app.Flag("offset", "Global input offset").Default("0ms").Short('o').Duration()
	LeadIn      = app.Flag("lead-in", "Delay between start and the first beat").Default("100ms").Duration()
	Tick        = app.Flag("tick", "Audio scheduler period").Default("25ms").Duration()
	Window      = app.Flag("window", "Audio scheduler look-ahead").Default("100ms").Duration()
	FramePeriod = app.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	Matcher     = app.Flag("matcher", "Hit matching policy: first or nearest").Default("first").String()

	Replay  = app.Flag("replay", "Re-score a replay code against the chosen song and exit").String()
	LogFile = app.Flag("log", "Write the log to this file").String()
)

// Parse reads the command line, args excludes the program name
func Parse(args []string) error {
	if _, err := app.Parse(args); nil != err {
		return err
	}
	if *Tick <= 0 || *FramePeriod <= 0 {
		return fmt.Errorf("tick and frame period must be positive")
	}
	if *Window < *Tick {
		return fmt.Errorf("window %v must be at least the tick %v", *Window, *Tick)
	}
	if *Volume < 0 || *Volume > 1 {
		return fmt.Errorf("volume %v must be between 0 and 1", *Volume)
	}
	return nil
}

// Keys parses the key bindings, one per lane
func Keys() (game.KeyBindings, error) {
	var bindings game.KeyBindings
	parts := strings.Split(*keys, ",")
	if len(parts) != len(bindings) {
		return bindings, fmt.Errorf("expected %v keys, got %q", len(bindings), *keys)
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return bindings, fmt.Errorf("empty key for %v", game.Directions[i])
		}
		if d, ok := bindings.Direction(p); ok {
			return bindings, fmt.Errorf("key %q bound to both %v and %v", p, d, game.Directions[i])
		}
		bindings[i] = p
	}
	return bindings, nil
}

func Settings() (game.Settings, error) {
	settings := game.DefaultSettings()
	bindings, err := Keys()
	if nil != err {
		return settings, err
	}
	skin, err := game.ParseSkin(*Skin)
	if nil != err {
		return settings, err
	}
	settings.Keys = bindings
	settings.Lenient = *Lenient
	settings.Skin = skin
	return settings, nil
}

func GameDifficulty() (game.Difficulty, error) {
	return game.ParseDifficulty(*Difficulty)
}

// GenerationSeed resolves a zero seed to the current time
func GenerationSeed() int64 {
	if *Seed == 0 {
		return time.Now().UnixNano()
	}
	return *Seed
}
