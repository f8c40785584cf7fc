package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/hwcursor/buffer"
)

type capsOnly struct{}

func (capsOnly) BufferCaps() buffer.Caps { return buffer.CapDataPtr }

type withPlane struct{ capsOnly }

func (withPlane) SetCursor(*buffer.Buffer, int, int) bool { return true }

func TestHasHardwareCursor(t *testing.T) {
	tests := []struct {
		name string
		b    Backend
		want bool
	}{
		{"caps only", capsOnly{}, false},
		{"with plane", withPlane{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasHardwareCursor(tt.b); got != tt.want {
				t.Errorf("HasHardwareCursor() = %v, want %v", got, tt.want)
			}
		})
	}
}

// register adds a test backend and removes it when t finishes.
func register(t *testing.T, name string, factory Factory) {
	t.Helper()
	Register(name, factory)
	t.Cleanup(func() {
		registry.Lock()
		delete(registry.factories, name)
		registry.Unlock()
	})
}

func TestRegistryOpen(t *testing.T) {
	register(t, "test-caps", func() Backend { return capsOnly{} })

	b, err := Open("test-caps")
	if err != nil {
		t.Fatalf("Open(test-caps) error = %v", err)
	}
	if b.BufferCaps() != buffer.CapDataPtr {
		t.Errorf("BufferCaps() = %v, want data_ptr", b.BufferCaps())
	}
}

func TestRegistryOpenUnregistered(t *testing.T) {
	b, err := Open("nonexistent")
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(nonexistent) error = %v, want ErrBackendNotAvailable", err)
	}
	if b != nil {
		t.Errorf("Open(nonexistent) = %v, want nil", b)
	}
}

func TestRegistryReplace(t *testing.T) {
	register(t, "test-replace", func() Backend { return capsOnly{} })
	Register("test-replace", func() Backend { return withPlane{} })

	b, err := Open("test-replace")
	if err != nil {
		t.Fatalf("Open(test-replace) error = %v", err)
	}
	if !HasHardwareCursor(b) {
		t.Error("Register should replace the earlier factory")
	}
}

func TestRegistryAvailableSorted(t *testing.T) {
	register(t, "test-b", func() Backend { return capsOnly{} })
	register(t, "test-a", func() Backend { return withPlane{} })

	available := Available()
	if !slices.IsSorted(available) {
		t.Errorf("Available() = %v, want sorted", available)
	}
	if !slices.Contains(available, "test-a") || !slices.Contains(available, "test-b") {
		t.Errorf("Available() = %v, want test-a and test-b", available)
	}
}

func TestRegisterInvalid(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		factory Factory
	}{
		{"empty name", "", func() Backend { return capsOnly{} }},
		{"nil factory", "test-nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register() should panic")
				}
			}()
			Register(tt.backend, tt.factory)
		})
	}
}
