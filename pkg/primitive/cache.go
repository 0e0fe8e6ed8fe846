package primitive

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

// ErrCacheMiss is returned by Open when the requested cache file does
// not exist on disk.
var ErrCacheMiss = errors.New("primitive: cache file not found")

// ErrInvalidPrimitive is returned when a cache file contains a sequence
// that is not bracelet-valid: the cache format assumes every stored
// value already passed Generate's checks, so this indicates a corrupt
// or hand-edited file.
var ErrInvalidPrimitive = errors.New("primitive: cache file contains a non-bracelet-valid sequence")

// Cache is a read-once, replay-many store of primitive sequences keyed
// by file path. It is a value owned by its caller — in this repo, the
// compound search driver — and passed by pointer to anything that
// needs to open handles against it, rather than a process-global slot
// table (see DESIGN.md for why a fixed-size global slot array was
// rejected).
type Cache struct {
	mu    sync.Mutex
	files map[string]*sharedSequences
}

// sharedSequences is the in-memory replay of one cache file, shared
// and refcounted across every Handle opened against the same path.
type sharedSequences struct {
	values []bracelet.Sequence
	refs   int
}

// Handle is one reader's cursor into a shared sequence array. Handles
// opened against the same path share the same backing array; each
// advances its own cursor independently.
type Handle struct {
	cache  *Cache
	path   string
	shared *sharedSequences
	cursor int
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{files: make(map[string]*sharedSequences)}
}

// Open returns a Handle for path. The first Open for a given path
// loads the entire file into memory; subsequent opens for the same
// path share that same backing array.
func (c *Cache) Open(path string) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	shared, ok := c.files[path]
	if !ok {
		values, err := readSequenceFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("primitive: open cache %s: %w", path, ErrCacheMiss)
			}
			return nil, fmt.Errorf("primitive: open cache %s: %w", path, err)
		}
		shared = &sharedSequences{values: values}
		c.files[path] = shared
	}
	shared.refs++
	return &Handle{cache: c, path: path, shared: shared}, nil
}

// Next returns the next sequence from h's cursor, or 0 at end of the
// shared array (matching the on-disk zero sentinel).
func (h *Handle) Next() bracelet.Sequence {
	if h.cursor >= len(h.shared.values) {
		return 0
	}
	v := h.shared.values[h.cursor]
	h.cursor++
	return v
}

// Reset rewinds h's cursor to the start without affecting sibling
// handles opened against the same path.
func (h *Handle) Reset() {
	h.cursor = 0
}

// Skip discards n values from the front of h's cursor, as used by the
// compound search's resumable skip counts.
func (h *Handle) Skip(n int) {
	h.cursor += n
	if h.cursor > len(h.shared.values) {
		h.cursor = len(h.shared.values)
	}
}

// Close decrements the shared array's refcount, freeing it from the
// cache when the last handle closes.
func (h *Handle) Close() {
	if h.shared == nil {
		return
	}
	c := h.cache
	c.mu.Lock()
	defer c.mu.Unlock()
	h.shared.refs--
	if h.shared.refs <= 0 {
		delete(c.files, h.path)
	}
	h.shared = nil
}

// readSequenceFile loads a raw little-endian uint64 stream terminated
// by a zero sentinel.
func readSequenceFile(path string) ([]bracelet.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var values []bracelet.Sequence
	for {
		var raw uint64
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("reading u64 stream: %w", err)
		}
		if raw == 0 {
			break
		}
		seq := bracelet.Sequence(raw)
		if !bracelet.IsValid(seq, false) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPrimitive, bracelet.BitString(seq))
		}
		values = append(values, seq)
	}
	return values, nil
}

// WriteSequenceFile writes values as a raw little-endian uint64
// stream, followed by the terminating zero sentinel. Used by the
// tooling that materializes a primitive generator run into the cache
// file format consumed by Cache.Open.
func WriteSequenceFile(path string, values []bracelet.Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range values {
		if v == 0 {
			return fmt.Errorf("primitive: cannot write sequence 0 (reserved as end-of-file sentinel)")
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(v)); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(0)); err != nil {
		return err
	}
	return w.Flush()
}

// CacheFileName returns the canonical cache file name for sequence
// length n (always bracelet.Len for this package), population k, and
// the strict no-uniform-window flag.
func CacheFileName(n, k int, strict bool) string {
	if strict {
		return fmt.Sprintf("dbn_%d_%d_short.bin", n, k)
	}
	return fmt.Sprintf("dbn_%d_%d.bin", n, k)
}
