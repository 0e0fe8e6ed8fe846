package bundleio

import (
	"encoding/json"
	"io"

	"github.com/conmol/bracelet52/pkg/compound"
)

// WriteJSON writes candidates as a JSON array, one object per
// candidate: a single json Encoder/Decoder round trip over a plain
// struct slice, no custom framing.
func WriteJSON(w io.Writer, candidates []compound.Candidate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}

// ReadJSON reads a JSON array of candidates previously written by
// WriteJSON.
func ReadJSON(r io.Reader) ([]compound.Candidate, error) {
	var candidates []compound.Candidate
	if err := json.NewDecoder(r).Decode(&candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}
