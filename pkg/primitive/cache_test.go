package primitive

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

func TestCacheFileNames(t *testing.T) {
	tests := []struct {
		n, k   int
		strict bool
		want   string
	}{
		{52, 26, false, "dbn_52_26.bin"},
		{52, 26, true, "dbn_52_26_short.bin"},
		{52, 28, false, "dbn_52_28.bin"},
	}
	for _, tt := range tests {
		if got := CacheFileName(tt.n, tt.k, tt.strict); got != tt.want {
			t.Errorf("CacheFileName(%d,%d,%v) = %q, want %q", tt.n, tt.k, tt.strict, got, tt.want)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dbn_52_26.bin")

	var values []bracelet.Sequence
	Generate(26, false, func(seq bracelet.Sequence) bool {
		values = append(values, seq)
		return len(values) < 10
	})
	if len(values) == 0 {
		t.Fatal("no sequences generated to round-trip")
	}

	if err := WriteSequenceFile(path, values); err != nil {
		t.Fatalf("WriteSequenceFile: %v", err)
	}

	cache := New()
	h, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	for i, want := range values {
		got := h.Next()
		if got != want {
			t.Errorf("value %d: got %#x, want %#x", i, uint64(got), uint64(want))
		}
	}
	if got := h.Next(); got != 0 {
		t.Errorf("expected end-of-cache sentinel 0, got %#x", uint64(got))
	}
}

func TestCacheSiblingsIndependentCursors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dbn_52_26.bin")

	var values []bracelet.Sequence
	Generate(26, false, func(seq bracelet.Sequence) bool {
		values = append(values, seq)
		return len(values) < 5
	})
	if err := WriteSequenceFile(path, values); err != nil {
		t.Fatalf("WriteSequenceFile: %v", err)
	}

	cache := New()
	h1, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open h1: %v", err)
	}
	defer h1.Close()
	h2, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open h2: %v", err)
	}
	defer h2.Close()

	_ = h1.Next()
	_ = h1.Next()
	h2.Reset()
	if got := h2.Next(); got != values[0] {
		t.Errorf("h2 cursor affected by h1 advancement: got %#x, want %#x", uint64(got), uint64(values[0]))
	}
}

func TestWriteSequenceFileRejectsZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	err := WriteSequenceFile(path, []bracelet.Sequence{1, 0, 2})
	if err == nil {
		t.Error("expected error writing a zero sequence (reserved sentinel)")
	}
}

func TestCacheOpenMissingFileReturnsErrCacheMiss(t *testing.T) {
	cache := New()
	_, err := cache.Open(filepath.Join(t.TempDir(), "does_not_exist.bin"))
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Open of missing file: got %v, want errors.Is(err, ErrCacheMiss)", err)
	}
}

func TestCacheOpenRejectsInvalidPrimitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.bin")
	// 0x3 is almost entirely zero at length 52, so its all-zero
	// length-6 window recurs many times and fails distinctness.
	if err := WriteSequenceFile(path, []bracelet.Sequence{0x3}); err != nil {
		t.Fatalf("WriteSequenceFile: %v", err)
	}

	cache := New()
	_, err := cache.Open(path)
	if !errors.Is(err, ErrInvalidPrimitive) {
		t.Errorf("Open of corrupt cache file: got %v, want errors.Is(err, ErrInvalidPrimitive)", err)
	}
}
