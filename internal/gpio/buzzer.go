package gpio

import "errors"

// Buzzer multiplexes between the level pin and the tone generator depending
// on the buzzer hardware. An active buzzer sounds on a DC level; a passive
// one needs a square wave.
type Buzzer struct {
	out     Outputs
	passive bool
	toneHz  int
}

// NewBuzzer creates a Buzzer over the given outputs.
func NewBuzzer(out Outputs, passive bool, toneHz int) *Buzzer {
	return &Buzzer{out: out, passive: passive, toneHz: toneHz}
}

// On energizes the peripheral. Safe to call while already sounding.
func (b *Buzzer) On() error {
	if b.passive {
		return b.out.SetTone(b.toneHz)
	}
	return b.out.SetBuzzerLevel(true)
}

// Off de-energizes both the level pin and the tone generator, regardless of
// mode. Safe to call when already silent.
func (b *Buzzer) Off() error {
	return errors.Join(
		b.out.SetBuzzerLevel(false),
		b.out.SetTone(0),
	)
}
