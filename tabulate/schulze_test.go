package tabulate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tabulate"
)

// TestSchulze_ClearWinner: a strict Condorcet winner is unique and tops
// the ranking.
func TestSchulze_ClearWinner(t *testing.T) {
	// B beats both A and C head-to-head.
	pw := tabulate.Pairwise{
		"B": {"A": 6, "C": 7},
		"A": {"B": 4, "C": 6},
		"C": {"A": 4, "B": 3},
	}
	res, err := tabulate.Schulze("U1", pw, core.Turnout{ValidBallots: 10}, abcOptions())
	require.NoError(t, err)

	assert.Equal(t, []core.OptionID{"B"}, res.Winners)
	assert.Equal(t, core.OptionID("B"), res.Ranking[0])
	assert.Equal(t, int64(2), res.Scores.Scores["B"], "two pairwise wins")
}

// TestSchulze_SymmetricCycle: a 3-cycle with symmetric 6-4 margins on
// A>B>C>A yields all three as winners and a canonical-order ranking.
func TestSchulze_SymmetricCycle(t *testing.T) {
	pw := tabulate.Pairwise{
		"A": {"B": 6, "C": 4},
		"B": {"C": 6, "A": 4},
		"C": {"A": 6, "B": 4},
	}
	res, err := tabulate.Schulze("U1", pw, core.Turnout{ValidBallots: 10}, abcOptions())
	require.NoError(t, err)

	assert.Equal(t, []core.OptionID{"A", "B", "C"}, res.Winners, "ties-all case")
	assert.Equal(t, []core.OptionID{"A", "B", "C"}, res.Ranking, "canonical order breaks the tie")
	for _, id := range []core.OptionID{"A", "B", "C"} {
		assert.Equal(t, int64(0), res.Scores.Scores[id], "no strict strongest-path win in the cycle")
	}
}

// TestSchulze_InputShape covers matrix validation.
func TestSchulze_InputShape(t *testing.T) {
	turnout := core.Turnout{ValidBallots: 10}

	_, err := tabulate.Schulze("U1", tabulate.Pairwise{"Z": {"A": 1}}, turnout, abcOptions())
	assert.ErrorIs(t, err, tabulate.ErrUnknownOption)

	_, err = tabulate.Schulze("U1", tabulate.Pairwise{"A": {"B": -1}}, turnout, abcOptions())
	assert.ErrorIs(t, err, tabulate.ErrNegativeCount)

	_, err = tabulate.Schulze("U1", tabulate.Pairwise{"A": {"A": 3}}, turnout, abcOptions())
	assert.ErrorIs(t, err, tabulate.ErrInconsistentTurnout, "diagonal must stay zero")
}
