package hashing_test

import (
	"errors"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/go-fshp/fshp"
	"github.com/hasbyte1/go-fshp/hashing"
)

// newTestManager returns a Manager with both drivers registered using fast
// options.  It accepts testing.TB so benchmarks can share it.
func newTestManager(tb testing.TB) *hashing.Manager {
	tb.Helper()
	m := hashing.NewManager(hashing.DriverFSHP)
	fH, err := hashing.NewFSHPHasher(fastFSHPOpts())
	if err != nil {
		tb.Fatalf("NewFSHPHasher: %v", err)
	}
	bcH, err := hashing.NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("NewBcryptHasher: %v", err)
	}
	_ = m.RegisterDriver(hashing.DriverFSHP, fH)
	_ = m.RegisterDriver(hashing.DriverBcrypt, bcH)
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// NewDefaultManager
// ──────────────────────────────────────────────────────────────────────────────

func TestNewDefaultManager(t *testing.T) {
	m, err := hashing.NewDefaultManager()
	if err != nil {
		t.Fatalf("NewDefaultManager: %v", err)
	}
	if m.DefaultDriver() != hashing.DriverFSHP {
		t.Errorf("default driver = %q, want fshp", m.DefaultDriver())
	}
	for _, d := range []hashing.DriverName{hashing.DriverFSHP, hashing.DriverBcrypt} {
		if !m.HasDriver(d) {
			t.Errorf("driver %q not registered", d)
		}
	}

	d, _ := m.Driver(hashing.DriverFSHP)
	if got := d.(*hashing.FSHPHasher).Options(); got.Rounds != fshp.DefaultRounds || got.Variant != fshp.DefaultVariant {
		t.Errorf("default fshp options = %+v", got)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterDriver / SetDefaultDriver
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_RegisterDriver_Invalid(t *testing.T) {
	m := hashing.NewManager(hashing.DriverFSHP)
	h := newTestFSHPHasher(t)
	if err := m.RegisterDriver("", h); !errors.Is(err, hashing.ErrEmptyDriverName) {
		t.Errorf("expected ErrEmptyDriverName, got %v", err)
	}
	if err := m.RegisterDriver("custom", nil); !errors.Is(err, hashing.ErrNilHasher) {
		t.Errorf("expected ErrNilHasher, got %v", err)
	}
}

func TestManager_RegisterDriver_ReplaceExisting(t *testing.T) {
	m := newTestManager(t)
	opts := fastFSHPOpts()
	opts.Variant = fshp.SHA512
	newH, _ := hashing.NewFSHPHasher(opts)
	_ = m.RegisterDriver(hashing.DriverFSHP, newH)

	got, _ := m.Driver(hashing.DriverFSHP)
	if got.(*hashing.FSHPHasher).Options().Variant != fshp.SHA512 {
		t.Error("driver should be replaced after re-registration")
	}
}

func TestManager_SetDefaultDriver(t *testing.T) {
	m := newTestManager(t)
	if err := m.SetDefaultDriver(hashing.DriverBcrypt); err != nil {
		t.Fatalf("SetDefaultDriver: %v", err)
	}
	if m.DefaultDriver() != hashing.DriverBcrypt {
		t.Errorf("got %q, want bcrypt", m.DefaultDriver())
	}
	if err := m.SetDefaultDriver("not-registered"); !errors.Is(err, hashing.ErrDriverNotFound) {
		t.Errorf("expected ErrDriverNotFound, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Make / Check / Info
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_Make_UsesDefaultDriver(t *testing.T) {
	m := newTestManager(t)
	hash, err := m.Make("password")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if d, ok := hashing.DetectDriver(hash); !ok || d != hashing.DriverFSHP {
		t.Errorf("expected fshp hash, detected %q", d)
	}
}

func TestManager_Check(t *testing.T) {
	m := newTestManager(t)
	hash, _ := m.Make("secret")
	if ok, err := m.Check("secret", hash); err != nil || !ok {
		t.Fatalf("Check: ok=%v err=%v", ok, err)
	}
	if ok, err := m.Check("wrong", hash); err != nil || ok {
		t.Fatalf("Check wrong: ok=%v err=%v", ok, err)
	}
}

func TestManager_Check_NoDefaultDriver(t *testing.T) {
	m := hashing.NewManager(hashing.DriverFSHP)
	_, err := m.Check("pw", "hash")
	if !errors.Is(err, hashing.ErrDriverNotFound) {
		t.Errorf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestManager_CheckWithDetect(t *testing.T) {
	m := newTestManager(t)
	_ = m.SetDefaultDriver(hashing.DriverBcrypt)

	ok, err := m.CheckWithDetect("test", knownFSHP1)
	if err != nil || !ok {
		t.Fatalf("CheckWithDetect fshp: ok=%v err=%v", ok, err)
	}
	if _, err := m.CheckWithDetect("pw", "not-a-hash"); !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
}

func TestManager_CheckWithDetect_UnregisteredDriver(t *testing.T) {
	m := hashing.NewManager(hashing.DriverBcrypt)
	_, err := m.CheckWithDetect("test", knownFSHP1)
	if !errors.Is(err, hashing.ErrDriverNotFound) {
		t.Errorf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestManager_Info(t *testing.T) {
	m := newTestManager(t)
	info, err := m.Info(knownFSHP1)
	if err != nil || info.Driver != hashing.DriverFSHP {
		t.Fatalf("Info: info=%+v err=%v", info, err)
	}

	bcH, _ := m.Driver(hashing.DriverBcrypt)
	hash, _ := bcH.Make("pw")
	info, err = m.InfoWithDetect(hash)
	if err != nil || info.Driver != hashing.DriverBcrypt {
		t.Fatalf("InfoWithDetect: info=%+v err=%v", info, err)
	}
	if _, err := m.InfoWithDetect("garbage"); !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash / Upgrade
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_NeedsRehash(t *testing.T) {
	m := newTestManager(t)
	current, _ := m.Make("pw")
	bcH, _ := m.Driver(hashing.DriverBcrypt)
	bcHash, _ := bcH.Make("pw")

	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"current fshp params", current, false},
		{"older fshp params", knownFSHP1, true},
		{"other driver", bcHash, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needs, err := m.NeedsRehash(tt.hash)
			if err != nil || needs != tt.want {
				t.Errorf("needs=%v err=%v, want %v", needs, err, tt.want)
			}
		})
	}

	if _, err := m.NeedsRehash("garbage"); !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
}

// TestManager_Upgrade_FSHPToBcrypt simulates moving users off FSHP:
//   - legacy FSHP hashes still verify,
//   - a successful login returns a bcrypt hash to persist,
//   - the new hash no longer needs rehashing.
func TestManager_Upgrade_FSHPToBcrypt(t *testing.T) {
	m := newTestManager(t)
	if err := m.SetDefaultDriver(hashing.DriverBcrypt); err != nil {
		t.Fatal(err)
	}

	stored, ok, err := m.Upgrade("test", knownFSHP1)
	if err != nil || !ok {
		t.Fatalf("Upgrade: ok=%v err=%v", ok, err)
	}
	if d, _ := hashing.DetectDriver(stored); d != hashing.DriverBcrypt {
		t.Fatalf("expected bcrypt hash after upgrade, got %q", stored)
	}

	again, ok, err := m.Upgrade("test", stored)
	if err != nil || !ok || again != stored {
		t.Fatalf("second Upgrade should keep hash: ok=%v err=%v changed=%v", ok, err, again != stored)
	}
}

func TestManager_Upgrade_WrongPassword(t *testing.T) {
	m := newTestManager(t)
	stored, ok, err := m.Upgrade("nope", knownFSHP1)
	if err != nil || ok || stored != knownFSHP1 {
		t.Fatalf("Upgrade wrong password: ok=%v err=%v stored=%q", ok, err, stored)
	}
}

func TestManager_Upgrade_Malformed(t *testing.T) {
	m := newTestManager(t)
	_, ok, err := m.Upgrade("test", "{FSHP1|8|4096}!!")
	if ok || !errors.Is(err, fshp.ErrMalformedEncoding) {
		t.Fatalf("expected ErrMalformedEncoding, got ok=%v err=%v", ok, err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrency
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_ConcurrentMakeCheck(t *testing.T) {
	m := newTestManager(t)
	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			hash, err := m.Make("concurrent-pw")
			if err != nil {
				errs <- err
				return
			}
			ok, err := m.CheckWithDetect("concurrent-pw", hash)
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- errors.New("Check returned false for correct password")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestManager_ConcurrentRegisterAndRead(t *testing.T) {
	m := newTestManager(t)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			h, _ := hashing.NewFSHPHasher(fastFSHPOpts())
			_ = m.RegisterDriver(hashing.DriverFSHP, h)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			_, _ = m.Driver(hashing.DriverFSHP)
		}
	}()

	wg.Wait()
}
