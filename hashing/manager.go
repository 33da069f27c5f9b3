package hashing

import (
	"fmt"
	"sync"

	"github.com/hasbyte1/go-fshp/fshp"
)

// Manager is a thread-safe driver registry and dispatcher.
//
// Register named [Hasher] implementations, nominate a default driver, and
// route Make / Check / NeedsRehash through the Manager.  Hashes from several
// drivers may coexist in storage; [Manager.CheckWithDetect] and
// [Manager.Upgrade] pick the driver from the hash prefix.
//
// # Thread safety
//
// A [sync.RWMutex] serialises RegisterDriver and SetDefaultDriver while
// allowing concurrent reads.
type Manager struct {
	mu      sync.RWMutex
	drivers map[DriverName]Hasher
	def     DriverName
}

// NewManager creates an empty Manager with the given default driver name.
func NewManager(defaultDriver DriverName) *Manager {
	return &Manager{
		drivers: make(map[DriverName]Hasher),
		def:     defaultDriver,
	}
}

// NewDefaultManager registers FSHP with [fshp.DefaultOptions] as the default
// driver and bcrypt with [DefaultBcryptCost].
func NewDefaultManager() (*Manager, error) {
	fshpH, err := NewFSHPHasher(fshp.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create default fshp hasher: %w", err)
	}
	bcryptH, err := NewBcryptHasher(DefaultBcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create default bcrypt hasher: %w", err)
	}

	m := NewManager(DriverFSHP)
	_ = m.RegisterDriver(DriverFSHP, fshpH)
	_ = m.RegisterDriver(DriverBcrypt, bcryptH)
	return m, nil
}

// RegisterDriver adds or replaces a named hasher.
func (m *Manager) RegisterDriver(name DriverName, h Hasher) error {
	if name == "" {
		return ErrEmptyDriverName
	}
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[name] = h
	return nil
}

// Driver returns the [Hasher] registered under name, or [ErrDriverNotFound].
func (m *Manager) Driver(name DriverName) (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}
	return h, nil
}

// SetDefaultDriver changes the driver used by [Manager.Make], [Manager.Check]
// and [Manager.NeedsRehash].  The driver must already be registered.
func (m *Manager) SetDefaultDriver(name DriverName) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[name]; !ok {
		return fmt.Errorf("%w: %q is not registered; call RegisterDriver first",
			ErrDriverNotFound, name)
	}
	m.def = name
	return nil
}

// DefaultDriver returns the name of the current default driver.
func (m *Manager) DefaultDriver() DriverName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// HasDriver reports whether a driver with the given name is registered.
func (m *Manager) HasDriver(name DriverName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[name]
	return ok
}

// Make hashes password using the default driver.
func (m *Manager) Make(password string) (string, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return "", err
	}
	return h.Make(password)
}

// Check verifies password against hash using the default driver.
func (m *Manager) Check(password, hash string) (bool, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// CheckWithDetect verifies password using the driver detected from the hash
// prefix.  Returns [ErrInvalidHash] for an unrecognised format and
// [ErrDriverNotFound] if the detected driver is not registered.
func (m *Manager) CheckWithDetect(password, hash string) (bool, error) {
	h, err := m.resolveByHash(hash)
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// NeedsRehash reports whether hash was produced by a driver other than the
// default, or by the default driver with different parameters.
func (m *Manager) NeedsRehash(hash string) (bool, error) {
	detected, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidHash
	}

	m.mu.RLock()
	def := m.def
	m.mu.RUnlock()

	if detected != def {
		return true, nil
	}
	h, err := m.Driver(detected)
	if err != nil {
		return false, err
	}
	return h.NeedsRehash(hash)
}

// Upgrade verifies password against hash and, on a match, re-hashes it with
// the default driver when [Manager.NeedsRehash] says so.
//
// It returns the hash to persist (the new one, or hash unchanged), whether
// the password matched, and an error for malformed input.  Call it on login:
//
//	stored, ok, err := m.Upgrade(password, stored)
//	if ok { persist(userID, stored) }
func (m *Manager) Upgrade(password, hash string) (string, bool, error) {
	ok, err := m.CheckWithDetect(password, hash)
	if err != nil || !ok {
		return hash, false, err
	}
	needs, err := m.NeedsRehash(hash)
	if err != nil || !needs {
		return hash, true, err
	}
	upgraded, err := m.Make(password)
	if err != nil {
		return hash, true, err
	}
	return upgraded, true, nil
}

// Info extracts metadata from hash using the default driver.
func (m *Manager) Info(hash string) (HashInfo, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

// InfoWithDetect extracts metadata using the driver detected from the hash.
func (m *Manager) InfoWithDetect(hash string) (HashInfo, error) {
	h, err := m.resolveByHash(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

func (m *Manager) resolveDefault() (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[m.def]
	if !ok {
		return nil, fmt.Errorf("%w: default driver %q has not been registered",
			ErrDriverNotFound, m.def)
	}
	return h, nil
}

func (m *Manager) resolveByHash(hash string) (Hasher, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		return nil, ErrInvalidHash
	}
	return m.Driver(name)
}
