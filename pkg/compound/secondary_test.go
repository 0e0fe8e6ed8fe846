package compound

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

func TestCombinationsEnumeratesAllSubsets(t *testing.T) {
	items := []int{1, 2, 3, 4}
	var got [][]int
	combinations(items, 2, func(c []int) bool {
		got = append(got, c)
		return true
	})
	want := [][]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	if len(got) != len(want) {
		t.Fatalf("got %d combinations, want %d", len(got), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("combination %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCombinationsZeroSize(t *testing.T) {
	n := 0
	combinations([]int{1, 2, 3}, 0, func(c []int) bool {
		n++
		if len(c) != 0 {
			t.Errorf("zero-size combination has %d elements", len(c))
		}
		return true
	})
	if n != 1 {
		t.Errorf("combinations with k=0 called yield %d times, want 1", n)
	}
}

func TestCombinationsStopsEarly(t *testing.T) {
	calls := 0
	combinations([]int{1, 2, 3, 4}, 1, func(c []int) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("combinations called yield %d times after it returned false, want 1", calls)
	}
}

func TestCombinationsMoreThanAvailable(t *testing.T) {
	called := false
	combinations([]int{1, 2}, 3, func(c []int) bool {
		called = true
		return true
	})
	if called {
		t.Error("combinations called yield for k > len(items)")
	}
}

func TestPositionsWhere(t *testing.T) {
	seq := seqFromPositions(0, 5, 10, 51)
	got := positionsWhere(func(i int) bool { return bracelet.Sequence(seq)&(1<<uint(i)) != 0 })
	want := []int{0, 5, 10, 51}
	sort.Ints(got)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("positionsWhere = %v, want %v", got, want)
	}
}

func TestSolve8KFailsWithNoCandidatesInASuit(t *testing.T) {
	// HD/CD both zero puts every position in the spade suit, so three
	// of the four suits (club, heart, diamond) have zero positions and
	// therefore zero odd&7k-set candidates: Solve8K must report failure
	// immediately rather than looping forever.
	var hd, cd, odd, c7k bracelet.Sequence
	_, _, ok := Solve8K(hd, cd, odd, c7k, false)
	if ok {
		t.Fatal("Solve8K reported success with no candidates available in three of the four suits")
	}
}

func TestSolveSecondaryWrapsFailureAsErrSecondaryAxis(t *testing.T) {
	var hd, cd, odd, c7k bracelet.Sequence
	c := Candidate{HD: hd, CD: cd, ODD: odd, C7K: c7k}
	_, err := SolveSecondary(c, Options{Solve8K: true})
	if !errors.Is(err, ErrSecondaryAxis) {
		t.Errorf("SolveSecondary with no viable 8K completion: got %v, want errors.Is(err, ErrSecondaryAxis)", err)
	}
}
