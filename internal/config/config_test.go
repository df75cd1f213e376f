package config

import (
	"testing"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
)

func TestDefaults(t *testing.T) {
	if err := Parse([]string{}); nil != err {
		t.Fatal(err)
	}
	settings, err := Settings()
	if nil != err {
		t.Fatal(err)
	}
	if settings != game.DefaultSettings() {
		t.Errorf("unexpected default settings %+v", settings)
	}
	if *Tick != 25*time.Millisecond || *Window != 100*time.Millisecond || *LeadIn != 100*time.Millisecond {
		t.Errorf("unexpected timing defaults %v %v %v", *Tick, *Window, *LeadIn)
	}
	d, err := GameDifficulty()
	if nil != err || d != game.Normal {
		t.Errorf("unexpected difficulty %v %v", d, err)
	}
}

func TestSettings(t *testing.T) {
	if err := Parse([]string{"--keys", "a, s,w,d", "--lenient", "--skin", "crystal", "-d", "expert"}); nil != err {
		t.Fatal(err)
	}
	settings, err := Settings()
	if nil != err {
		t.Fatal(err)
	}
	if settings.Keys != (game.KeyBindings{"a", "s", "w", "d"}) || !settings.Lenient || settings.Skin != game.SkinCrystal {
		t.Errorf("unexpected settings %+v", settings)
	}
	if d, _ := GameDifficulty(); d != game.Expert {
		t.Errorf("unexpected difficulty %v", d)
	}
}

var invalidArgs = [][]string{
	{"--keys", "a,s,w"},
	{"--keys", "a,s,a,d"},
	{"--keys", "a,,w,d"},
	{"--skin", "shiny"},
}

func TestInvalidSettings(t *testing.T) {
	for _, args := range invalidArgs {
		if err := Parse(args); nil != err {
			t.Fatal(err)
		}
		if _, err := Settings(); nil == err {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestInvalidTiming(t *testing.T) {
	if err := Parse([]string{"--tick", "50ms", "--window", "20ms"}); nil == err {
		t.Error("expected error for a window shorter than the tick")
	}
	if err := Parse([]string{"--volume", "2"}); nil == err {
		t.Error("expected error for volume above 1")
	}
}

func TestSeed(t *testing.T) {
	if err := Parse([]string{"--seed", "42"}); nil != err {
		t.Fatal(err)
	}
	if GenerationSeed() != 42 {
		t.Errorf("unexpected seed %v", GenerationSeed())
	}
}
