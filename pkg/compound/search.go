package compound

import (
	"path/filepath"

	"github.com/conmol/bracelet52/pkg/bracelet"
	"github.com/conmol/bracelet52/pkg/primitive"
)

// suitDensity and valueDensity are the fixed bit-populations of the
// suit axes (HD, CD) and value axes (ODD, 7K).
const (
	suitDensity  = 26
	valueDensity = 28
)

// Candidate is one accepted tuple from the compound search, ready for
// the deck realizer.
type Candidate struct {
	HD, CD, HC, ODD, C7K bracelet.Sequence
	C8K, C4T             bracelet.Sequence
	Has8K, Has4T         bool
}

// Options configures one Search run.
type Options struct {
	Strict               bool // use the *_short.bin (no-uniform-window) cache variant
	RejectLongUniformRun bool
	Solve8K              bool
	Solve4T              bool // only honored when Solve8K is also true
	SevensApart          bool
}

// Checkpoint holds the four outer-loop restart indices: each is
// consumed exactly once, at the very start of the run, to resume a
// previous search (see SaveCheckpoint/LoadCheckpoint).
type Checkpoint struct {
	SkipRed, SkipCD, SkipOdd, Skip7K int
}

// axisPaths resolves the two cache file paths Search reads from, under
// dbnPath: dbn_52_26[_short].bin for suit axes, dbn_52_28[_short].bin
// for value axes.
func axisPaths(dbnPath string, strict bool) (suitPath, valuePath string) {
	return filepath.Join(dbnPath, primitive.CacheFileName(bracelet.Len, suitDensity, strict)),
		filepath.Join(dbnPath, primitive.CacheFileName(bracelet.Len, valueDensity, strict))
}

// Search runs the single-threaded compound search: nested
// red→cd→odd→7k loops over the cached primitive axes, applying the
// overlap/odd/7K filters, optionally invoking the secondary axis
// solvers, and calling emit for every accepted candidate. Search
// returns early if emit returns false.
func Search(cache *primitive.Cache, dbnPath string, opts Options, ckpt Checkpoint, emit func(Candidate) bool) error {
	suitPath, valuePath := axisPaths(dbnPath, opts.Strict)

	redHandle, err := cache.Open(suitPath)
	if err != nil {
		return err
	}
	defer redHandle.Close()
	cdHandle, err := cache.Open(suitPath)
	if err != nil {
		return err
	}
	defer cdHandle.Close()
	oddHandle, err := cache.Open(valuePath)
	if err != nil {
		return err
	}
	defer oddHandle.Close()
	c7kHandle, err := cache.Open(valuePath)
	if err != nil {
		return err
	}
	defer c7kHandle.Close()

	if ckpt.SkipRed > 0 {
		redHandle.Skip(ckpt.SkipRed)
	}

	keepGoing := true
	redPass := 0
	for keepGoing {
		red := redHandle.Next()
		if red == 0 {
			break
		}
		if opts.RejectLongUniformRun && bracelet.HasLongUniformRun(red) {
			redPass++
			continue
		}

		skipCD, skipOdd, skip7K := 0, 0, 0
		if redPass == 0 {
			skipCD, skipOdd, skip7K = ckpt.SkipCD, ckpt.SkipOdd, ckpt.Skip7K
		}
		keepGoing = runRed(cdHandle, oddHandle, c7kHandle, red, opts, skipCD, skipOdd, skip7K, emit)
		redPass++
	}
	return nil
}

// runRed runs the cd→odd→7k nested loops for one fixed red value,
// applying the one-shot skip counts only on the first pass through
// each nesting level, and returns whether the caller should keep
// searching further red values.
func runRed(cdHandle, oddHandle, c7kHandle *primitive.Handle, red bracelet.Sequence, opts Options, skipCD, skipOdd, skip7K int, emit func(Candidate) bool) bool {
	cdHandle.Reset()
	if skipCD > 0 {
		cdHandle.Skip(skipCD)
	}

	keepGoing := true
	cdPass := 0
	for keepGoing {
		cd := cdHandle.Next()
		if cd == 0 {
			break
		}
		hc, ok := OverlapFilter(red, cd)
		if !ok {
			cdPass++
			continue
		}

		oddHandle.Reset()
		if cdPass == 0 && skipOdd > 0 {
			oddHandle.Skip(skipOdd)
		}
		oddPass := 0
		for keepGoing {
			odd := oddHandle.Next()
			if odd == 0 {
				break
			}
			if !OddFilter(red, cd, odd) {
				oddPass++
				continue
			}

			c7kHandle.Reset()
			if cdPass == 0 && oddPass == 0 && skip7K > 0 {
				c7kHandle.Skip(skip7K)
			}
			for keepGoing {
				c7k := c7kHandle.Next()
				if c7k == 0 {
					break
				}
				if !SevenKFilter(red, cd, hc, odd, c7k) {
					continue
				}

				candidate := Candidate{HD: red, CD: cd, HC: hc, ODD: odd, C7K: c7k}
				if opts.Solve8K {
					solved, err := SolveSecondary(candidate, opts)
					if err != nil {
						continue
					}
					candidate = solved
				}

				if !emit(candidate) {
					keepGoing = false
				}
			}
			oddPass++
		}
		cdPass++
	}
	return keepGoing
}
