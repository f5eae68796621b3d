package store

import "sync"

// Fake is an in-memory Store for tests. The persisted value is modeled as
// the raw CSV blob, so tests can assert on the exact on-disk form and seed
// malformed contents.
type Fake struct {
	mu sync.Mutex

	// CSV is the persisted blob; nil means the key is absent.
	CSV *string

	// Saves counts Save calls that wrote or removed the key.
	Saves int

	// LoadErr, SaveErr, ClearErr, if set, are returned by the matching op.
	LoadErr  error
	SaveErr  error
	ClearErr error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates an empty Fake (key absent).
func NewFake() *Fake {
	return &Fake{}
}

// SeedCSV sets the persisted blob directly, bypassing validation. Useful
// for simulating corrupt on-disk state.
func (f *Fake) SeedCSV(csv string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CSV = &csv
}

// Persisted returns the raw blob and whether the key exists.
func (f *Fake) Persisted() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CSV == nil {
		return "", false
	}
	return *f.CSV, true
}

// Load parses the stored blob like the real backend does.
func (f *Fake) Load() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	if f.CSV == nil {
		return nil, nil
	}
	return ParseCSV(*f.CSV), nil
}

// Save normalizes and stores the list; empty removes the key.
func (f *Fake) Save(alarms []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Saves++
	norm := Normalize(alarms)
	if len(norm) == 0 {
		f.CSV = nil
		return nil
	}
	csv := EncodeCSV(norm)
	f.CSV = &csv
	return nil
}

// Clear removes the key.
func (f *Fake) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.CSV = nil
	return nil
}

// Close marks the fake as closed.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
