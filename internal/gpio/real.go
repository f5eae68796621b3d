//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Real drives actual hardware using the Linux GPIO character device.
type Real struct {
	chip   *gpiocdev.Chip
	lamp1  *gpiocdev.Line
	lamp2  *gpiocdev.Line
	buzzer *gpiocdev.Line // nil in passive mode (pin is PWM-attached)
	pwm    *sysfsPWM      // nil in active mode
}

// NewReal requests the lamp and buzzer lines as outputs, initially LOW.
// In passive mode the buzzer pin is driven by the PWM peripheral instead of
// a GPIO line.
func NewReal(pinLamp1, pinLamp2, pinBuzzer int, passive bool) (*Real, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lamp1, err := chip.RequestLine(pinLamp1, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request lamp1 pin %d: %w", pinLamp1, err)
	}

	lamp2, err := chip.RequestLine(pinLamp2, gpiocdev.AsOutput(0))
	if err != nil {
		lamp1.Close()
		chip.Close()
		return nil, fmt.Errorf("request lamp2 pin %d: %w", pinLamp2, err)
	}

	r := &Real{chip: chip, lamp1: lamp1, lamp2: lamp2}

	if passive {
		r.pwm = newSysfsPWM()
	} else {
		buzzer, err := chip.RequestLine(pinBuzzer, gpiocdev.AsOutput(0))
		if err != nil {
			lamp1.Close()
			lamp2.Close()
			chip.Close()
			return nil, fmt.Errorf("request buzzer pin %d: %w", pinBuzzer, err)
		}
		r.buzzer = buzzer
	}

	return r, nil
}

// SetLamp1 drives the first lamp pin.
func (r *Real) SetLamp1(on bool) error {
	if err := r.lamp1.SetValue(level(on)); err != nil {
		return fmt.Errorf("set lamp1: %w", err)
	}
	return nil
}

// SetLamp2 drives the second lamp pin.
func (r *Real) SetLamp2(on bool) error {
	if err := r.lamp2.SetValue(level(on)); err != nil {
		return fmt.Errorf("set lamp2: %w", err)
	}
	return nil
}

// SetBuzzerLevel drives the buzzer level pin. No-op in passive mode.
func (r *Real) SetBuzzerLevel(on bool) error {
	if r.buzzer == nil {
		return nil
	}
	if err := r.buzzer.SetValue(level(on)); err != nil {
		return fmt.Errorf("set buzzer: %w", err)
	}
	return nil
}

// SetTone starts or stops the PWM square wave. No-op in active mode.
func (r *Real) SetTone(hz int) error {
	if r.pwm == nil {
		return nil
	}
	return r.pwm.SetTone(hz)
}

// Close leaves all pins LOW and releases GPIO resources.
func (r *Real) Close() error {
	var errs []error

	if r.pwm != nil {
		if err := r.pwm.SetTone(0); err != nil {
			errs = append(errs, fmt.Errorf("stop tone: %w", err))
		}
	}

	for _, l := range []struct {
		name string
		line *gpiocdev.Line
	}{
		{"lamp1", r.lamp1},
		{"lamp2", r.lamp2},
		{"buzzer", r.buzzer},
	} {
		if l.line == nil {
			continue
		}
		if err := l.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("lower %s pin: %w", l.name, err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", l.name, err))
		}
	}

	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func level(on bool) int {
	if on {
		return 1
	}
	return 0
}
