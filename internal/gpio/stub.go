//go:build !linux

package gpio

import "errors"

// Real is not available on non-Linux platforms.
type Real struct{}

// NewReal returns an error on non-Linux platforms.
func NewReal(pinLamp1, pinLamp2, pinBuzzer int, passive bool) (*Real, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// SetLamp1 is not implemented on non-Linux platforms.
func (r *Real) SetLamp1(on bool) error {
	return errors.New("gpio: not supported")
}

// SetLamp2 is not implemented on non-Linux platforms.
func (r *Real) SetLamp2(on bool) error {
	return errors.New("gpio: not supported")
}

// SetBuzzerLevel is not implemented on non-Linux platforms.
func (r *Real) SetBuzzerLevel(on bool) error {
	return errors.New("gpio: not supported")
}

// SetTone is not implemented on non-Linux platforms.
func (r *Real) SetTone(hz int) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *Real) Close() error {
	return nil
}
