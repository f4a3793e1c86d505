// buzzer.go - single-channel square-wave buzzer played through oto/v3

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package buzzer implements the VM's one-note sound device: the guest
// latches a frequency and a duration, then triggers a blocking tone. This
// mirrors the oto/v3 player wiring in the teacher's sound chip backend, cut
// down to the single square oscillator the MX-26301 actually exposes
// (ports 0x30/0x31/0x32).
package buzzer

import (
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

const sampleRate = 44100
const squareAmplitude = 0.5

// Buzzer owns the oto playback context and the currently latched tone
// parameters. A Buzzer with a nil ctx is a no-op, used in headless mode.
type Buzzer struct {
	ctx        *oto.Context
	freqHz     uint32
	durationMs uint32
}

// New opens the default oto output device. Failure to open an audio device
// is a host resource failure (SPEC_FULL.md §7 kind 3): New returns a usable,
// silent Buzzer together with the error so playback becomes a no-op.
func New() (*Buzzer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return &Buzzer{}, err
	}
	<-ready
	return &Buzzer{ctx: ctx}, nil
}

// Headless returns a Buzzer that discards every tone, for --headless runs.
func Headless() *Buzzer { return &Buzzer{} }

// SetFrequency latches the tone frequency in Hz (OUT 0x30).
func (b *Buzzer) SetFrequency(hz uint32) { b.freqHz = hz }

// SetDuration latches the tone duration in milliseconds (OUT 0x31).
func (b *Buzzer) SetDuration(ms uint32) { b.durationMs = ms }

// Trigger plays the latched frequency for the latched duration and blocks
// until playback completes (OUT 0x32), matching the original's synchronous
// Sleep-after-PlaySound behaviour.
func (b *Buzzer) Trigger() {
	if b.ctx == nil || b.freqHz == 0 || b.durationMs == 0 {
		return
	}
	samples := squareWave(b.freqHz, b.durationMs)
	player := b.ctx.NewPlayer(newSampleReader(samples))
	player.Play()
	time.Sleep(time.Duration(b.durationMs) * time.Millisecond)
	player.Close()
}

// squareWave renders a full-amplitude square wave at hz for durationMs.
func squareWave(hz, durationMs uint32) []float32 {
	n := int(sampleRate * durationMs / 1000)
	out := make([]float32, n)
	period := float64(sampleRate) / float64(hz)
	for i := range out {
		phase := math.Mod(float64(i), period) / period
		if phase < 0.5 {
			out[i] = squareAmplitude
		} else {
			out[i] = -squareAmplitude
		}
	}
	return out
}
