// Command bracelet drives the bracelet-deck search pipeline: generate
// primitive axes, search for compound candidates, realize decks from
// candidate tuples, and render decks as text.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conmol/bracelet52/pkg/bracelet"
	"github.com/conmol/bracelet52/pkg/bundleio"
	"github.com/conmol/bracelet52/pkg/cardfmt"
	"github.com/conmol/bracelet52/pkg/compound"
	"github.com/conmol/bracelet52/pkg/deckcode"
	"github.com/conmol/bracelet52/pkg/primitive"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bracelet",
		Short: "Bracelet-valid 52-card deck search — generate, search, realize, render",
	}

	var cacheDir string
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Primitive sequence cache directory (overrides DBNPATH)")

	rootCmd.AddCommand(
		newGenerateCmd(&cacheDir),
		newSearchCmd(&cacheDir),
		newRealizeCmd(),
		newRenderCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveDBNPath implements SPEC_FULL.md's Ambient: configuration
// rule: a --cache-dir flag overrides the DBNPATH environment variable.
func resolveDBNPath(cacheDir string) (string, error) {
	if cacheDir != "" {
		return cacheDir, nil
	}
	if v := os.Getenv("DBNPATH"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("bracelet: no cache directory set (use --cache-dir or DBNPATH)")
}

func newGenerateCmd(cacheDir *string) *cobra.Command {
	var population int
	var strict bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enumerate bracelet-valid primitive sequences and write them to the cache file",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbnPath, err := resolveDBNPath(*cacheDir)
			if err != nil {
				return err
			}
			if population < 0 {
				return fmt.Errorf("bracelet: --population must be >= 0, got %d", population)
			}

			var values []bracelet.Sequence
			primitive.Generate(population, strict, func(seq bracelet.Sequence) bool {
				values = append(values, seq)
				return true
			})

			path := filepath.Join(dbnPath, primitive.CacheFileName(bracelet.Len, population, strict))
			if err := primitive.WriteSequenceFile(path, values); err != nil {
				return fmt.Errorf("bracelet: writing %s: %w", path, err)
			}
			if verbose {
				fmt.Printf("wrote %d sequences to %s\n", len(values), path)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&population, "population", 26, "Target bit population (0 = any)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exclude all-zero/all-one length-6 windows")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	return cmd
}

func newSearchCmd(cacheDir *string) *cobra.Command {
	var strict bool
	var rejectLongRun bool
	var solve8K bool
	var solve4T bool
	var sevensApart bool
	var workers int
	var output string
	var checkpointPath string
	var verbose bool
	var skipRed, skipCD, skipOdd, skip7K int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run the compound search over cached primitive axes and emit candidate tuples",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbnPath, err := resolveDBNPath(*cacheDir)
			if err != nil {
				return err
			}
			if solve4T && !solve8K {
				return fmt.Errorf("bracelet: --solve-4t requires --solve-8k (4T is built from the 7K/8K difference)")
			}

			opts := compound.Options{
				Strict:               strict,
				RejectLongUniformRun: rejectLongRun,
				Solve8K:              solve8K,
				Solve4T:              solve4T,
				SevensApart:          sevensApart,
			}

			var out *os.File
			if output != "" {
				out, err = os.Create(output)
				if err != nil {
					return err
				}
				defer out.Close()
			}

			cache := primitive.New()
			found := 0
			emit := func(c compound.Candidate) bool {
				found++
				if out != nil {
					if err := bundleio.WriteCandidate(out, c, bundleio.Umake); err != nil {
						fmt.Fprintf(os.Stderr, "bracelet: write candidate: %v\n", err)
						return false
					}
				}
				if verbose {
					fmt.Printf("candidate %d: RED=%s CD=%s\n", found, bracelet.BitString(c.HD), bracelet.BitString(c.CD))
				}
				return true
			}

			var runErr error
			if workers > 0 {
				pool := compound.NewWorkerPool(workers)
				runErr = pool.Run(cache, dbnPath, opts, skipRed, verbose, emit)
			} else {
				ckpt := compound.Checkpoint{SkipRed: skipRed, SkipCD: skipCD, SkipOdd: skipOdd, Skip7K: skip7K}
				runErr = compound.Search(cache, dbnPath, opts, ckpt, emit)
			}
			if runErr != nil {
				return runErr
			}

			fmt.Printf("found %d candidates\n", found)
			if checkpointPath != "" {
				ckpt := &compound.RunCheckpoint{Skip: compound.Checkpoint{SkipRed: skipRed, SkipCD: skipCD, SkipOdd: skipOdd, Skip7K: skip7K}}
				if err := compound.SaveCheckpoint(checkpointPath, ckpt); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Use the strict (*_short.bin) cache variant")
	cmd.Flags().BoolVar(&rejectLongRun, "reject-long-run", false, "Reject RED axes with a long uniform run")
	cmd.Flags().BoolVar(&solve8K, "solve-8k", false, "Also synthesize the 8K secondary axis")
	cmd.Flags().BoolVar(&solve4T, "solve-4t", false, "Also synthesize the 4T secondary axis (requires --solve-8k)")
	cmd.Flags().BoolVar(&sevensApart, "sevens-apart", false, "Require the 8K clear bits to be pairwise >=6 apart cyclically")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers over the outer RED loop (0 = sequential)")
	cmd.Flags().StringVar(&output, "output", "", "Candidate tuple text output file")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "Checkpoint file to write skip counts to on completion")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().IntVar(&skipRed, "skip-red", 0, "Discard this many RED values before searching")
	cmd.Flags().IntVar(&skipCD, "skip-cd", 0, "Discard this many CD values on the first RED pass")
	cmd.Flags().IntVar(&skipOdd, "skip-odd", 0, "Discard this many ODD values on the first CD pass")
	cmd.Flags().IntVar(&skip7K, "skip-7k", 0, "Discard this many 7K values on the first ODD pass")
	return cmd
}

func newRealizeCmd() *cobra.Command {
	var variantStr string
	var cut bool
	var includeSpecial bool

	cmd := &cobra.Command{
		Use:   "realize [candidates.txt]",
		Short: "Realize decks from a candidate tuple file and print the best-scoring result per candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			candidates, skipped, err := bundleio.ParseCandidates(f)
			if err != nil {
				return fmt.Errorf("bracelet: %w", err)
			}
			for _, s := range skipped {
				fmt.Fprintf(os.Stderr, "bracelet: skipped record ending at line %d: %s\n", s.EndLine, s.Reason)
			}

			table, err := lookupTableFor(variantStr)
			if err != nil {
				return err
			}

			for i, c := range candidates {
				bundle := deckcode.Bundle{HD: c.HD, CD: c.CD, HC: c.HC, ODD: c.ODD, X: c.C7K, Y: c.C8K, Z: c.C4T}
				result, err := deckcode.Realize(bundle, table, cut, includeSpecial)
				if err != nil {
					fmt.Fprintf(os.Stderr, "bracelet: candidate %d: %v\n", i, err)
					continue
				}
				if result.Degenerate {
					fmt.Fprintf(os.Stderr, "bracelet: candidate %d: no optional predicate supported by any realization\n", i)
				}
				fmt.Printf("candidate %d: score=%d predicates=%#x\n", i, result.Score, result.Predicates)
				if err := cardfmt.Render(os.Stdout, result.Deck); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variantStr, "variant", "umake", "Value lookup table: umake or uplus2")
	cmd.Flags().BoolVar(&cut, "cut", false, "Rotate output so the 9 of Diamonds is at the bottom")
	cmd.Flags().BoolVar(&includeSpecial, "all", false, "Also test the nine special catalog predicates")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var variantStr string
	var cut bool
	var includeSpecial bool

	cmd := &cobra.Command{
		Use:   "render [candidates.txt]",
		Short: "Realize and render only the single best-scoring deck across all candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			candidates, _, err := bundleio.ParseCandidates(f)
			if err != nil {
				return fmt.Errorf("bracelet: %w", err)
			}
			table, err := lookupTableFor(variantStr)
			if err != nil {
				return err
			}

			var best *deckcode.Result
			for _, c := range candidates {
				bundle := deckcode.Bundle{HD: c.HD, CD: c.CD, HC: c.HC, ODD: c.ODD, X: c.C7K, Y: c.C8K, Z: c.C4T}
				result, err := deckcode.Realize(bundle, table, cut, includeSpecial)
				if err != nil {
					continue
				}
				if best == nil || result.Score > best.Score {
					best = result
				}
			}
			if best == nil {
				return fmt.Errorf("bracelet: no candidate realized successfully")
			}

			if cut {
				return cardfmt.RenderRotated(os.Stdout, best.Deck, best.TopCardIndex)
			}
			return cardfmt.Render(os.Stdout, best.Deck)
		},
	}
	cmd.Flags().StringVar(&variantStr, "variant", "umake", "Value lookup table: umake or uplus2")
	cmd.Flags().BoolVar(&cut, "cut", false, "Rotate output so the 9 of Diamonds is at the bottom")
	cmd.Flags().BoolVar(&includeSpecial, "all", false, "Also test the nine special catalog predicates")
	return cmd
}

func lookupTableFor(variant string) (deckcode.LookupTable, error) {
	switch strings.ToLower(variant) {
	case "umake", "":
		return deckcode.TableUmake, nil
	case "uplus2":
		return deckcode.TablePlus2, nil
	default:
		return deckcode.LookupTable{}, fmt.Errorf("bracelet: unknown --variant %q (want umake or uplus2)", variant)
	}
}
