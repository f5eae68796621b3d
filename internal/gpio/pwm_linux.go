//go:build linux

package gpio

import (
	"fmt"
	"os"
	"path/filepath"
)

// sysfsPWM generates square waves through the Linux sysfs PWM interface
// (/sys/class/pwm/pwmchip0/pwm0). The 50% duty cycle gives the symmetric
// drive a passive buzzer needs.
type sysfsPWM struct {
	base     string
	channel  string
	exported bool
}

func newSysfsPWM() *sysfsPWM {
	return &sysfsPWM{
		base:    "/sys/class/pwm/pwmchip0",
		channel: "pwm0",
	}
}

// SetTone programs the PWM period for the given frequency and enables the
// output. hz <= 0 disables the output instead.
func (p *sysfsPWM) SetTone(hz int) error {
	if hz <= 0 {
		if !p.exported {
			return nil
		}
		if err := p.write("enable", "0"); err != nil {
			return fmt.Errorf("disable pwm: %w", err)
		}
		return nil
	}

	if err := p.ensureExported(); err != nil {
		return err
	}

	periodNs := int64(1e9) / int64(hz)

	// Zero the duty cycle before shrinking the period: the kernel rejects a
	// period smaller than the currently programmed duty cycle.
	if err := p.write("duty_cycle", "0"); err != nil {
		return fmt.Errorf("reset duty_cycle: %w", err)
	}
	if err := p.write("period", fmt.Sprintf("%d", periodNs)); err != nil {
		return fmt.Errorf("set period: %w", err)
	}
	if err := p.write("duty_cycle", fmt.Sprintf("%d", periodNs/2)); err != nil {
		return fmt.Errorf("set duty_cycle: %w", err)
	}
	if err := p.write("enable", "1"); err != nil {
		return fmt.Errorf("enable pwm: %w", err)
	}
	return nil
}

func (p *sysfsPWM) ensureExported() error {
	if p.exported {
		return nil
	}

	if _, err := os.Stat(filepath.Join(p.base, p.channel)); err == nil {
		p.exported = true
		return nil
	}

	if err := os.WriteFile(filepath.Join(p.base, "export"), []byte("0"), 0o644); err != nil {
		return fmt.Errorf("export pwm channel: %w", err)
	}
	p.exported = true
	return nil
}

func (p *sysfsPWM) write(attr, value string) error {
	return os.WriteFile(filepath.Join(p.base, p.channel, attr), []byte(value), 0o644)
}
