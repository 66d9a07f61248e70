package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLP(t *testing.T) {
	model := Model{
		Name: "test_model",
		Objective: []Term{
			{Coefficient: 10, Variable: "x_0"},
			{Coefficient: -2, Variable: "y_0"},
		},
		Variables: []Variable{
			{Name: "x_0", Kind: Binary},
			{Name: "x_1", Kind: Binary},
			{Name: "y_0", Kind: Integer},
			{Name: "s_0", Kind: Continuous, Low: 2},
		},
		Constraints: []Constraint{
			{
				Name:  "c0",
				Terms: []Term{{Coefficient: 1, Variable: "x_0"}, {Coefficient: 1, Variable: "x_1"}},
				Sense: Equal,
				RHS:   1,
			},
			{
				Name:  "c1",
				Terms: []Term{{Coefficient: 1, Variable: "y_0"}, {Coefficient: -3, Variable: "x_0"}},
				Sense: GreaterEqual,
				RHS:   0,
			},
			{
				Name:  "c2",
				Terms: []Term{{Coefficient: 1, Variable: "x_0"}, {Coefficient: 1.5, Variable: "s_0"}},
				Sense: LessEqual,
				RHS:   4.5,
			},
		},
	}

	lp := model.ToLP()

	assert.Contains(t, lp, "\\ test_model\n")
	assert.Contains(t, lp, "Minimize\n obj: 10 x_0 - 2 y_0\n")
	assert.Contains(t, lp, " c0: 1 x_0 + 1 x_1 = 1\n")
	assert.Contains(t, lp, " c1: 1 y_0 - 3 x_0 >= 0\n")
	assert.Contains(t, lp, " c2: 1 x_0 + 1.5 s_0 <= 4.5\n")
	assert.Contains(t, lp, "Bounds\n 2 <= s_0\n")
	assert.Contains(t, lp, "Generals\n y_0\n")
	assert.Contains(t, lp, "Binaries\n x_0\n x_1\n")
	assert.Contains(t, lp, "End\n")
}

func TestToLPOmitsEmptySections(t *testing.T) {
	model := Model{
		Name:      "binary_only",
		Objective: []Term{{Coefficient: 1, Variable: "x_0"}},
		Variables: []Variable{{Name: "x_0", Kind: Binary}},
		Constraints: []Constraint{
			{Name: "c0", Terms: []Term{{Coefficient: 1, Variable: "x_0"}}, Sense: Equal, RHS: 1},
		},
	}

	lp := model.ToLP()

	assert.NotContains(t, lp, "Bounds")
	assert.NotContains(t, lp, "Generals")
	assert.Contains(t, lp, "Binaries\n x_0\n")
}
