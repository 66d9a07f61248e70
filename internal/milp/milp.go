package milp

import (
	"fmt"
	"strconv"
	"strings"
)

type VarKind int

const (
	Binary VarKind = iota
	Integer
	Continuous
)

type Variable struct {
	Name string
	Kind VarKind
	Low  float64 // Lower bound; binaries are implicitly bounded to {0, 1}
}

type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

type Term struct {
	Coefficient float64
	Variable    string
}

type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a mixed-integer linear program: named variables, linear
// constraints and a minimized objective.
type Model struct {
	Name        string
	Objective   []Term
	Variables   []Variable
	Constraints []Constraint
}

// ToLP renders the model in CPLEX LP text format, the lingua franca of the
// external MILP solvers this package shells out to.
func (m Model) ToLP() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\\ %v\n", m.Name)

	builder.WriteString("Minimize\n obj:")
	writeTerms(&builder, m.Objective)
	builder.WriteString("\n")

	builder.WriteString("Subject To\n")
	for _, constraint := range m.Constraints {
		fmt.Fprintf(&builder, " %v:", constraint.Name)
		writeTerms(&builder, constraint.Terms)
		fmt.Fprintf(&builder, " %v %v\n", senseToken(constraint.Sense), formatNumber(constraint.RHS))
	}

	// LP format defaults every variable to 0 <= v, so only non-zero lower
	// bounds need an explicit entry
	bounded := false
	for _, variable := range m.Variables {
		if variable.Kind != Binary && variable.Low != 0 {
			if !bounded {
				builder.WriteString("Bounds\n")
				bounded = true
			}
			fmt.Fprintf(&builder, " %v <= %v\n", formatNumber(variable.Low), variable.Name)
		}
	}

	writeSection(&builder, "Generals", m.Variables, Integer)
	writeSection(&builder, "Binaries", m.Variables, Binary)

	builder.WriteString("End\n")
	return builder.String()
}

func writeTerms(builder *strings.Builder, terms []Term) {
	for i, term := range terms {
		coefficient := term.Coefficient
		operator := " +"
		if coefficient < 0 {
			operator = " -"
			coefficient = -coefficient
		} else if i == 0 {
			operator = ""
		}
		fmt.Fprintf(builder, "%v %v %v", operator, formatNumber(coefficient), term.Variable)
	}
}

func writeSection(builder *strings.Builder, header string, variables []Variable, kind VarKind) {
	started := false
	for _, variable := range variables {
		if variable.Kind != kind {
			continue
		}
		if !started {
			builder.WriteString(header + "\n")
			started = true
		}
		fmt.Fprintf(builder, " %v\n", variable.Name)
	}
}

func senseToken(sense Sense) string {
	switch sense {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	default:
		return "="
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
