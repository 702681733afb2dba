package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/beatball/constant"
)

// NoteFreq returns the equal-temperament frequency of a MIDI pitch, A4 = 440Hz
func NoteFreq(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// ToneDuration maps a note length in seconds to an audible tone length
func ToneDuration(seconds float64) time.Duration {
	d := time.Duration(seconds * float64(time.Second))
	if d < constant.HitToneMinDuration {
		return constant.HitToneMinDuration
	}
	if d > constant.HitToneMaxDuration {
		return constant.HitToneMaxDuration
	}
	return d
}

// NoteStreamer builds a shaped tone: a sine fundamental with an octave
// overtone, attack/release envelope and master volume
// Frequencies above Nyquist fall back to silence of the same length
func NoteStreamer(rate beep.SampleRate, pitch int, duration time.Duration, volume float64) beep.Streamer {
	total := rate.N(duration)
	freq := NoteFreq(pitch)

	fund := sine(rate, freq, total)
	over := sine(rate, freq*2, total)

	mixed := beep.Mix(
		newVolume(fund, 1-constant.HitToneOvertoneMix),
		newVolume(over, constant.HitToneOvertoneMix),
	)
	shaped := newEnvelope(mixed, total, rate.N(constant.HitToneAttack), rate.N(constant.HitToneRelease))
	return newVolume(shaped, volume)
}

// sine takes n samples of a pure tone
func sine(rate beep.SampleRate, freq float64, n int) beep.Streamer {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return beep.Take(n, tone)
}

// envelope ramps gain up over attack samples and down over the last release samples
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	if attack+release > total {
		attack = total / 2
		release = total - attack
	}
	return &envelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *envelope) gain() float64 {
	switch {
	case e.attack > 0 && e.pos < e.attack:
		return float64(e.pos) / float64(e.attack)
	case e.release > 0 && e.pos >= e.total-e.release:
		return float64(e.total-e.pos) / float64(e.release)
	default:
		return 1
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if rem := e.total - e.pos; len(samples) > rem {
		samples = samples[:rem]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; beep volume is logarithmic, so zero is mapped to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
