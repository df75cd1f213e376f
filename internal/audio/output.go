package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

type Backend uint8

const (
	BackendSpeaker Backend = iota
	BackendHeadless
)

func (b Backend) String() string {
	if b == BackendHeadless {
		return "headless"
	}
	return "speaker"
}

type Config struct {
	Buffer   time.Duration // Speaker buffer, also the clock granularity
	Gain     float64       // Master gain, 0.3 keeps a full mix from clipping
	Headless bool          // Skip the sound card entirely
}

func DefaultConfig() Config {
	return Config{
		Buffer: 10 * time.Millisecond,
		Gain:   0.3,
	}
}

// Output feeds a deck to the sound card, or to a real-time pump when no
// sound card is available so that the clock still advances.
type Output struct {
	deck    *Deck
	volume  *effects.Volume
	backend Backend
	buffer  int
	gain    float64

	mu   sync.Mutex // guards volume and gain against the headless pump
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func Open(deck *Deck, cfg Config) (*Output, error) {
	if cfg.Buffer <= 0 {
		return nil, fmt.Errorf("invalid audio buffer %v", cfg.Buffer)
	}
	o := &Output{
		deck:   deck,
		buffer: deck.SampleRate().N(cfg.Buffer),
		volume: &effects.Volume{Streamer: deck, Base: 2},
		stop:   make(chan struct{}),
	}
	if o.buffer < 1 {
		o.buffer = 1
	}
	o.setGain(cfg.Gain)
	o.gain = cfg.Gain

	if !cfg.Headless {
		err := speaker.Init(deck.SampleRate(), o.buffer)
		if nil == err {
			speaker.Play(o.volume)
			o.backend = BackendSpeaker
			return o, nil
		}
		log.Println("unable to open speaker, continuing headless:", err)
	}

	o.backend = BackendHeadless
	o.wg.Add(1)
	go o.pump(cfg.Buffer)
	return o, nil
}

func (o *Output) Backend() Backend {
	return o.backend
}

// pump pulls the deck at real-time pace, discarding the samples
func (o *Output) pump(period time.Duration) {
	defer o.wg.Done()
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	buf := make([][2]float64, o.buffer)
	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			o.mu.Lock()
			o.volume.Stream(buf)
			o.mu.Unlock()
		}
	}
}

func (o *Output) setGain(g float64) {
	if g <= 0 {
		o.volume.Silent = true
		o.volume.Volume = 0
		return
	}
	o.volume.Silent = false
	o.volume.Volume = math.Log2(g)
}

// Gain is the current master gain
func (o *Output) Gain() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gain
}

// SetGain changes the master gain while playing
func (o *Output) SetGain(g float64) {
	if o.backend == BackendSpeaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.setGain(g)
	o.gain = g
}

// Resume opens the user gesture gate, the clock starts advancing
func (o *Output) Resume() {
	o.deck.Resume()
}

func (o *Output) Suspend() {
	o.deck.Suspend()
}

func (o *Output) Close() {
	o.once.Do(func() {
		if o.backend == BackendSpeaker {
			speaker.Clear()
		}
		close(o.stop)
		o.wg.Wait()
		o.deck.Clear()
	})
}
