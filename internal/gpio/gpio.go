// Package gpio provides the lamp and buzzer output driver with hardware
// abstraction. The real implementation uses the Linux GPIO character device
// for level pins and the sysfs PWM interface for tone generation.
// The fake implementation allows testing without hardware.
package gpio

// Outputs drives the lamp pins, the buzzer level pin, and the tone generator.
type Outputs interface {
	// SetLamp1 drives the first lamp pin: true = HIGH, false = LOW.
	SetLamp1(on bool) error

	// SetLamp2 drives the second lamp pin.
	SetLamp2(on bool) error

	// SetBuzzerLevel drives the buzzer level pin (active buzzer).
	SetBuzzerLevel(on bool) error

	// SetTone starts a square wave at the given frequency on the PWM
	// channel (passive buzzer). hz <= 0 stops the tone.
	SetTone(hz int) error

	// Close releases output resources, leaving all pins LOW.
	Close() error
}

// Pin defaults (BCM numbering).
const (
	DefaultPinLamp1  = 5
	DefaultPinLamp2  = 4
	DefaultPinBuzzer = 12
)

// DefaultToneHz is the square-wave frequency used for passive buzzers.
const DefaultToneHz = 2000
