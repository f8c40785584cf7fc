// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import (
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
)

// Caps is a bitmask of the buffer storage kinds an allocator produces or a
// consumer accepts.
type Caps uint32

const (
	// CapDataPtr buffers expose CPU memory through DataPtrAccessor.
	CapDataPtr Caps = 1 << iota

	// CapDMABUF buffers are shareable GPU memory.
	CapDMABUF

	// CapShm buffers live in shared memory.
	CapShm
)

// String lists the capability names joined by "|".
func (c Caps) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	if c&CapDataPtr != 0 {
		names = append(names, "data_ptr")
	}
	if c&CapDMABUF != 0 {
		names = append(names, "dmabuf")
	}
	if c&CapShm != 0 {
		names = append(names, "shm")
	}
	return strings.Join(names, "|")
}

// Layout modifiers. ModifierInvalid stands for an implicit, driver-chosen
// layout; ModifierLinear is a plain row-major layout.
const (
	ModifierLinear  uint64 = 0
	ModifierInvalid uint64 = 1<<56 - 1
)

// FormatARGB8888 is the preferred 32-bit cursor format: ARGB in a
// little-endian word, which is B, G, R, A in memory.
const FormatARGB8888 = gputypes.TextureFormatBGRA8Unorm

// Format is a pixel format together with the layout modifiers it can be
// used with.
type Format struct {
	Code      gputypes.TextureFormat
	Modifiers []uint64
}

// Has reports whether the format supports modifier.
func (f Format) Has(modifier uint64) bool {
	return slices.Contains(f.Modifiers, modifier)
}

// Intersect returns the modifiers common to a and b. It reports false when
// the codes differ or no modifier is shared.
func Intersect(a, b Format) (Format, bool) {
	if a.Code != b.Code {
		return Format{}, false
	}
	out := Format{Code: a.Code}
	for _, mod := range a.Modifiers {
		if b.Has(mod) {
			out.Modifiers = append(out.Modifiers, mod)
		}
	}
	return out, len(out.Modifiers) > 0
}

// FormatSet is a set of formats keyed by code. The zero value is empty.
type FormatSet struct {
	formats []Format
}

// NewFormatSet returns a set holding each code with the given modifiers.
func NewFormatSet(modifiers []uint64, codes ...gputypes.TextureFormat) *FormatSet {
	s := &FormatSet{}
	for _, code := range codes {
		for _, mod := range modifiers {
			s.Add(code, mod)
		}
	}
	return s
}

// Add records that code supports modifier.
func (s *FormatSet) Add(code gputypes.TextureFormat, modifier uint64) {
	for i := range s.formats {
		if s.formats[i].Code == code {
			if !s.formats[i].Has(modifier) {
				s.formats[i].Modifiers = append(s.formats[i].Modifiers, modifier)
			}
			return
		}
	}
	s.formats = append(s.formats, Format{Code: code, Modifiers: []uint64{modifier}})
}

// Get returns the format with the given code. A nil set holds nothing.
func (s *FormatSet) Get(code gputypes.TextureFormat) (Format, bool) {
	if s == nil {
		return Format{}, false
	}
	for _, f := range s.formats {
		if f.Code == code {
			return Format{Code: f.Code, Modifiers: slices.Clone(f.Modifiers)}, true
		}
	}
	return Format{}, false
}

// Len returns the number of formats in the set.
func (s *FormatSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.formats)
}

// Codes returns the format codes in insertion order.
func (s *FormatSet) Codes() []gputypes.TextureFormat {
	if s == nil {
		return nil
	}
	codes := make([]gputypes.TextureFormat, len(s.formats))
	for i, f := range s.formats {
		codes[i] = f.Code
	}
	return codes
}
