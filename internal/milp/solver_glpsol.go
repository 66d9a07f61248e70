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

const glpsolPath = "glpsol"

type glpsolSolver struct{}

func NewGlpsolSolver() Solver {
	return &glpsolSolver{}
}

func (solver *glpsolSolver) Solve(ctx context.Context, model Model) (*Solution, error) {
	dir, err := os.MkdirTemp("", "roomalloc-glpsol-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	modelFile := filepath.Join(dir, "model.lp")
	solutionFile := filepath.Join(dir, "solution.txt")
	if err := os.WriteFile(modelFile, []byte(model.ToLP()), 0666); err != nil {
		return nil, err
	}

	args := []string{"--lp", modelFile, "-o", solutionFile}
	if deadline, ok := ctx.Deadline(); ok {
		seconds := int(time.Until(deadline).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		args = append(args, "--tmlim", strconv.Itoa(seconds))
	}

	cmd := exec.CommandContext(ctx, glpsolPath, args...)
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("an error occurred during glpsol execution: %v : %v", err.Error(), stderr.String())
	}

	out, err := os.ReadFile(solutionFile)
	if err != nil {
		return nil, fmt.Errorf("glpsol produced no solution file: %v", err)
	}

	return ParseGlpsolSolution(string(out))
}

// ParseGlpsolSolution decodes a glpsol plain-text solution report (-o). The
// report carries a "Status:" line, an "Objective:" line and a column table
// from which variable activities are read.
func ParseGlpsolSolution(out string) (*Solution, error) {
	solution := &Solution{Values: make(map[string]float64)}
	statusSeen := false

	inColumns := false
	pendingName := "" // Long names wrap onto their own line in the report
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "Status:"):
			statusSeen = true
			status := strings.ToUpper(trimmed)
			switch {
			case strings.Contains(status, "UNBOUNDED"):
				solution.Status = StatusUnbounded
				return solution, nil
			case strings.Contains(status, "EMPTY"), strings.Contains(status, "UNDEFINED"), strings.Contains(status, "INFEASIBLE"):
				solution.Status = StatusInfeasible
				return solution, nil
			case strings.Contains(status, "NON-OPTIMAL"):
				solution.Status = StatusFeasible
			case strings.Contains(status, "OPTIMAL"):
				solution.Status = StatusOptimal
			default:
				return nil, fmt.Errorf("unrecognized glpsol status line: %v", trimmed)
			}
			continue

		case strings.HasPrefix(trimmed, "Objective:"):
			// e.g. "Objective:  obj = 26 (MINimum)"
			fields := strings.Fields(trimmed)
			if len(fields) < 4 {
				return nil, fmt.Errorf("invalid glpsol objective line: %v", trimmed)
			}
			objective, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid glpsol objective line %q: %v", trimmed, err)
			}
			solution.Objective = objective
			continue

		case strings.Contains(line, "Column name"):
			inColumns = true
			continue
		}

		if !inColumns {
			continue
		}
		if trimmed == "" {
			inColumns = false
			continue
		}
		if strings.HasPrefix(trimmed, "---") {
			continue
		}

		fields := strings.Fields(line)
		name := pendingName
		pendingName = ""
		if name == "" {
			if len(fields) < 2 {
				continue
			}
			if _, err := strconv.Atoi(fields[0]); err != nil {
				continue
			}
			name = fields[1]
			fields = fields[2:]
		}

		activity, found := firstNumber(fields)
		if !found {
			// Activity wrapped onto the next line
			pendingName = name
			continue
		}
		solution.Values[name] = activity
	}

	if !statusSeen {
		return nil, fmt.Errorf("glpsol report carries no status line")
	}
	return solution, nil
}

func firstNumber(fields []string) (float64, bool) {
	for _, field := range fields {
		if value, err := strconv.ParseFloat(field, 64); err == nil {
			return value, true
		}
	}
	return 0, false
}
