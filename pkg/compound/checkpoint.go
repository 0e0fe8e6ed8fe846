package compound

import (
	"encoding/gob"
	"os"
)

// RunCheckpoint is the on-disk resume state for a Search run: the four
// outer-loop skip counts plus every candidate accepted so far. A flat
// struct, gob encoded to a single file.
type RunCheckpoint struct {
	Skip       Checkpoint
	Candidates []Candidate
}

// SaveCheckpoint writes run state to path.
func SaveCheckpoint(path string, ckpt *RunCheckpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads run state from path.
func LoadCheckpoint(path string) (*RunCheckpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt RunCheckpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}
