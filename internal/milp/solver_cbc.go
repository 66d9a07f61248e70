package milp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const cbcPath = "cbc"

type cbcSolver struct{}

func NewCBCSolver() Solver {
	return &cbcSolver{}
}

func (solver *cbcSolver) Solve(ctx context.Context, model Model) (*Solution, error) {
	dir, err := os.MkdirTemp("", "roomalloc-cbc-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	modelFile := filepath.Join(dir, "model.lp")
	solutionFile := filepath.Join(dir, "solution.txt")
	if err := os.WriteFile(modelFile, []byte(model.ToLP()), 0666); err != nil {
		return nil, err
	}

	args := []string{modelFile}
	if deadline, ok := ctx.Deadline(); ok {
		seconds := int(time.Until(deadline).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		args = append(args, "seconds", strconv.Itoa(seconds))
	}
	args = append(args, "solve", "solution", solutionFile)

	cmd := exec.CommandContext(ctx, cbcPath, args...)
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("an error occurred during cbc execution: %v : %v", err.Error(), stderr.String())
	}

	out, err := os.ReadFile(solutionFile)
	if err != nil {
		return nil, fmt.Errorf("cbc produced no solution file: %v", err)
	}

	return ParseCBCSolution(string(out))
}

// ParseCBCSolution decodes a cbc solution file. The first line carries the
// status and objective, e.g.
//
//	Optimal - objective value 26.00000000
//	Stopped on time - objective value 26.00000000
//	Infeasible - objective value 0.00000000
//
// and every following line is "index name value objectiveCoefficient".
func ParseCBCSolution(out string) (*Solution, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := strings.ToLower(strings.TrimSpace(lines[0]))

	solution := &Solution{Values: make(map[string]float64)}
	switch {
	case strings.Contains(header, "infeasible"):
		solution.Status = StatusInfeasible
		return solution, nil
	case strings.Contains(header, "unbounded"):
		solution.Status = StatusUnbounded
		return solution, nil
	case strings.HasPrefix(header, "optimal"):
		solution.Status = StatusOptimal
	case strings.HasPrefix(header, "stopped"):
		solution.Status = StatusFeasible
	default:
		return nil, fmt.Errorf("unrecognized cbc status line: %v", lines[0])
	}

	headerFields := strings.Fields(lines[0])
	objective, err := strconv.ParseFloat(headerFields[len(headerFields)-1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid objective in cbc status line %q: %v", lines[0], err)
	}
	solution.Objective = objective

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// cbc marks violated rows with a leading "**"
		if fields[0] == "**" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in cbc solution row %q: %v", line, err)
		}
		solution.Values[fields[1]] = value
	}

	return solution, nil
}
