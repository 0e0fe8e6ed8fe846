// Package bundleio reads and writes the candidate-tuple text stream:
// the format the compound search emits and the deck realizer consumes
// as a stable, file-based contract between the two passes.
package bundleio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conmol/bracelet52/pkg/bracelet"
	"github.com/conmol/bracelet52/pkg/compound"
)

// ErrMalformedRecord is the underlying cause wrapped into a
// SkippedRecord's Reason for a structurally bad candidate block (a
// missing required axis, or a label ParseCandidates doesn't recognize)
// — distinct from ErrCorruptCandidateFile, which aborts the read.
var ErrMalformedRecord = errors.New("bundleio: malformed candidate record")

// Variant selects which three-label set the X/Y/Z secondary axes are
// written and read under: umake's 7K/8K/4T, or uplus2's 92/T2/6Q.
type Variant int

const (
	Umake Variant = iota
	Uplus2
)

func (v Variant) xLabel() string {
	if v == Uplus2 {
		return "92"
	}
	return "7K"
}
func (v Variant) yLabel() string {
	if v == Uplus2 {
		return "T2"
	}
	return "8K"
}
func (v Variant) zLabel() string {
	if v == Uplus2 {
		return "6Q"
	}
	return "4T"
}

// axisAliases maps every label ParseCandidates recognizes to a
// variant-independent role name, so the reader doesn't need to know in
// advance which variant produced the file.
var axisAliases = map[string]string{
	"RED": "HD", "CD": "CD", "HC": "HC", "ODD": "ODD",
	"7K": "X", "92": "X",
	"8K": "Y", "T2": "Y",
	"4T": "Z", "6Q": "Z",
}

// WriteCandidate writes one candidate block: two "Found" marker
// lines, the axis lines, then a blank line.
func WriteCandidate(w io.Writer, c compound.Candidate, variant Variant) error {
	lines := []struct {
		label string
		seq   bracelet.Sequence
		write bool
	}{
		{variant.xLabel(), c.C7K, true},
		{variant.yLabel(), c.C8K, c.Has8K},
		{variant.zLabel(), c.C4T, c.Has4T},
		{"ODD", c.ODD, true},
		{"RED", c.HD, true},
		{"CD", c.CD, true},
		{"HC", c.HC, true},
	}

	if _, err := fmt.Fprintln(w, "Found suit sequences."); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Found odd sequence candidate."); err != nil {
		return err
	}
	for _, l := range lines {
		if !l.write {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s sequence:  %s\n", l.label, bracelet.BitString(l.seq)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// ErrCorruptCandidateFile is returned when a candidate line's binary
// field fails to parse, or parses to a non-bracelet-valid sequence;
// this is fatal, the file is considered corrupt.
type ErrCorruptCandidateFile struct {
	Line int
	Err  error
}

func (e *ErrCorruptCandidateFile) Error() string {
	return fmt.Sprintf("bundleio: line %d: %v", e.Line, e.Err)
}

func (e *ErrCorruptCandidateFile) Unwrap() error { return e.Err }

// SkippedRecord describes one malformed candidate block that was
// skipped rather than aborting the whole read: a per-record
// diagnostic for a malformed input candidate block.
type SkippedRecord struct {
	EndLine int
	Reason  string
}

// ParseCandidates reads candidate blocks from r. It returns every
// successfully parsed candidate plus a list of skipped (malformed)
// records for diagnostics; a corrupt binary field is a fatal error and
// aborts the read immediately.
func ParseCandidates(r io.Reader) ([]compound.Candidate, []SkippedRecord, error) {
	scanner := bufio.NewScanner(r)
	var candidates []compound.Candidate
	var skipped []SkippedRecord

	block := make(map[string]bracelet.Sequence)
	lineNo := 0

	finalize := func() {
		if len(block) == 0 {
			return
		}
		c, err := buildCandidate(block)
		if err != nil {
			skipped = append(skipped, SkippedRecord{EndLine: lineNo, Reason: err.Error()})
		} else {
			candidates = append(candidates, c)
		}
		block = make(map[string]bracelet.Sequence)
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.Contains(line, "Found") {
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			finalize()
			continue
		}

		// Lines read "<LABEL> sequence:  <binary>"; the role is keyed by
		// <LABEL> alone.
		rawLabel := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line[:colon]), "sequence"))
		role, known := axisAliases[rawLabel]
		binaryStr := strings.TrimSpace(line[colon+1:])

		seq, err := bracelet.ParseBitString(binaryStr)
		if err != nil {
			return candidates, skipped, &ErrCorruptCandidateFile{Line: lineNo, Err: err}
		}
		if !bracelet.IsValid(seq, false) {
			return candidates, skipped, &ErrCorruptCandidateFile{Line: lineNo, Err: fmt.Errorf("sequence %q is not bracelet-valid", rawLabel)}
		}
		if !known {
			skipped = append(skipped, SkippedRecord{EndLine: lineNo, Reason: fmt.Errorf("%w: unknown label %q", ErrMalformedRecord, rawLabel).Error()})
			continue
		}
		block[role] = seq
	}
	if err := scanner.Err(); err != nil {
		return candidates, skipped, err
	}
	finalize()
	return candidates, skipped, nil
}

// buildCandidate assembles a compound.Candidate from one block's
// role->sequence map, returning an ErrMalformedRecord-wrapping error
// (and no candidate) if a required axis is missing.
func buildCandidate(block map[string]bracelet.Sequence) (compound.Candidate, error) {
	required := []string{"HD", "CD", "HC", "ODD", "X"}
	for _, role := range required {
		if _, ok := block[role]; !ok {
			return compound.Candidate{}, fmt.Errorf("%w: missing required axis %q", ErrMalformedRecord, role)
		}
	}
	c := compound.Candidate{
		HD:  block["HD"],
		CD:  block["CD"],
		HC:  block["HC"],
		ODD: block["ODD"],
		C7K: block["X"],
	}
	if y, ok := block["Y"]; ok {
		c.C8K, c.Has8K = y, true
	}
	if z, ok := block["Z"]; ok {
		c.C4T, c.Has4T = z, true
	}
	return c, nil
}
