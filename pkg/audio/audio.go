// pkg/audio/audio.go
package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-gravity/pkg/event"
	"github.com/opd-ai/go-gravity/pkg/logging"
)

const (
	sampleRate = beep.SampleRate(44100)

	baseFrequency = 220.0
	maxFrequency  = 1760.0
	pingDuration  = 80 * time.Millisecond
	minGap        = 40 * time.Millisecond
)

// Tone returns a short sine ping of the given frequency and duration whose
// volume decays linearly to silence. volume is in beep's log2 units; 0 leaves
// the tone at full scale.
func Tone(sr beep.SampleRate, freq float64, duration time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %v Hz: %w", freq, err)
	}

	total := sr.N(duration)
	decayed := &decay{streamer: beep.Take(total, sine), total: total}

	return &effects.Volume{
		Streamer: decayed,
		Base:     2,
		Volume:   volume,
	}, nil
}

// decay fades a stream of known length linearly to zero
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(d.position)/float64(d.total)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.streamer.Err()
}

// PitchFor maps a collision's closing speed to a ping frequency. Faster
// impacts sound higher, capped at four octaves above the base.
func PitchFor(closingSpeed float64) float64 {
	if !(closingSpeed > 0) {
		return baseFrequency
	}
	f := baseFrequency * (1 + math.Log2(1+closingSpeed))
	return math.Min(f, maxFrequency)
}

// CollisionSound plays a ping for each collision event. Pings closer together
// than the minimum gap are dropped so clusters of contacts do not saturate
// the mixer.
type CollisionSound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	last        time.Time
	now         func() time.Time
	played      int
	dropped     int

	bus    *event.Bus
	sub    event.Subscription
	logger *logging.Logger
}

// NewCollisionSound creates a collision sound player. It stays silent until
// Initialize opens the speaker.
func NewCollisionSound(logger *logging.Logger) *CollisionSound {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CollisionSound{
		mixer:  &beep.Mixer{},
		now:    time.Now,
		logger: logger,
	}
}

// Initialize opens the audio device and starts the mixer
func (cs *CollisionSound) Initialize() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("open speaker: %w", err)
	}
	speaker.Play(cs.mixer)
	cs.initialized = true
	return nil
}

// Attach subscribes to collision events on bus
func (cs *CollisionSound) Attach(bus *event.Bus) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.bus = bus
	cs.sub = bus.Subscribe(event.BodiesCollided, cs.handle)
}

func (cs *CollisionSound) handle(e event.Event) {
	collision, ok := e.(*event.CollisionEvent)
	if !ok {
		return
	}
	cs.Play(collision.ClosingSpeed)
}

// Play queues a ping for an impact with the given closing speed. It reports
// whether the ping was queued.
func (cs *CollisionSound) Play(closingSpeed float64) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	if !cs.last.IsZero() && now.Sub(cs.last) < minGap {
		cs.dropped++
		return false
	}
	cs.last = now

	tone, err := Tone(sampleRate, PitchFor(closingSpeed), pingDuration, -1)
	if err != nil {
		cs.logger.Warn(context.Background(), "collision tone failed", "error", err.Error())
		return false
	}

	if cs.initialized {
		speaker.Lock()
		cs.mixer.Add(tone)
		speaker.Unlock()
	} else {
		cs.mixer.Add(tone)
	}
	cs.played++
	return true
}

// Stats returns how many pings were played and dropped
func (cs *CollisionSound) Stats() (played, dropped int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.played, cs.dropped
}

// Close detaches from the event bus and silences the mixer
func (cs *CollisionSound) Close() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.bus != nil {
		cs.bus.Unsubscribe(event.BodiesCollided, cs.sub)
		cs.bus = nil
	}

	if cs.initialized {
		speaker.Lock()
		cs.mixer.Clear()
		speaker.Unlock()
		speaker.Clear()
		cs.initialized = false
	} else {
		cs.mixer.Clear()
	}

	cs.logger.Debug(context.Background(), "audio closed", "played", cs.played, "dropped", cs.dropped)
}
