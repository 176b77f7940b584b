package tie_test

import (
	"fmt"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

// ExampleResolver_Pick demonstrates the deterministic-order policy: the
// canonical first candidate (lowest rank index) wins every time.
func ExampleResolver_Pick() {
	r := &tie.Resolver{Policy: tie.DeterministicOrder}
	winner, ev, err := r.Pick("example.pick", "U-1", []core.OptionItem{
		{ID: "bravo", DisplayName: "Bravo", RankIndex: 1},
		{ID: "alpha", DisplayName: "Alpha", RankIndex: 0},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(winner, ev.Policy)
	// Output:
	// alpha deterministic_order
}

// ExampleResolver_Pick_statusQuo shows the status-quo policy preferring
// its designated option whenever it is among the tied candidates.
func ExampleResolver_Pick_statusQuo() {
	r := &tie.Resolver{Policy: tie.StatusQuo, StatusQuoOption: "bravo"}
	winner, _, err := r.Pick("example.pick", "U-1", []core.OptionItem{
		{ID: "alpha", DisplayName: "Alpha", RankIndex: 0},
		{ID: "bravo", DisplayName: "Bravo", RankIndex: 1},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(winner)
	// Output:
	// bravo
}

// ExampleStream_Shuffle replays the same seed twice: the permutation is
// bit-for-bit identical, which is the whole point of the stream.
func ExampleStream_Shuffle() {
	shuffle := func(seed int64) []int {
		s, _ := tie.NewStream(seed)
		xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
		s.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
		return xs
	}
	a, b := shuffle(7), shuffle(7)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
	}
	fmt.Println("identical permutation:", same)
	// Output:
	// identical permutation: true
}

// ExampleCompareRatios compares 1/3 against 33/100 exactly: no floats,
// no rounding, just 128-bit cross multiplication.
func ExampleCompareRatios() {
	fmt.Println(tie.CompareRatios(1, 3, 33, 100))
	// Output:
	// 1
}
