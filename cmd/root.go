package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edusched/roomalloc/internal/csvio"
	"github.com/edusched/roomalloc/internal/milp"
	"github.com/edusched/roomalloc/internal/model"
)

var (
	instanceFile     string  // Optional self-contained JSON instance; overrides the CSV inputs
	coursesFile      string  // Path to the courses CSV
	roomsFile        string  // Path to the rooms CSV
	weightsFile      string  // Optional YAML file with the penalty weights
	outFile          string  // Path for the allocation report CSV
	solverName       string  // External MILP backend to shell out to
	timeoutSeconds   int     // Solver time limit
	logLevel         string  // Log verbosity level
	occupancyCeiling float64 // Allowed fraction of room capacity before the excess penalty
	splitThreshold   int     // Minimum enrollment for a discipline to become split-eligible
)

var solvers = map[string]func() milp.Solver{
	"cbc":    milp.NewCBCSolver,
	"glpsol": milp.NewGlpsolSolver,
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "roomalloc",
	Short: "Classroom allocation through mixed-integer programming",
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Allocate disciplines to rooms",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		newSolver, ok := solvers[solverName]
		if !ok {
			logrus.Fatalf("%v is not a valid solver", solverName)
		}

		instance, err := loadInstance()
		if err != nil {
			logrus.Fatalf("cannot load instance: %v", err)
		}

		logrus.Infof("Allocating %d disciplines across %d rooms", len(instance.Disciplines), len(instance.Rooms))

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
		defer cancel()

		allocator := model.NewAllocator(newSolver())
		allocation, err := allocator.Allocate(ctx, instance)
		if err != nil {
			logrus.Fatalf("allocation failed: %v", err)
		}

		if !allocation.Optimal {
			logrus.Warn("Solver hit its time limit; the allocation is feasible but not proven optimal")
		}
		logrus.Infof("Allocation score: %v", allocation.Score)

		if outFile == "" {
			for _, assignment := range allocation.Assignments {
				fmt.Printf("%v -> %v\n", assignment.Unit.Name, assignment.Room.ID)
			}
			return
		}
		if err := csvio.WriteAllocation(outFile, allocation); err != nil {
			logrus.Fatalf("cannot write allocation report: %v", err)
		}
		logrus.Infof("Allocation report written to %v", outFile)
	},
}

// loadInstance builds the run input either from a single JSON instance file
// or from the courses/rooms CSV pair. Fields the JSON leaves unset fall back
// to the command-line values.
func loadInstance() (model.Instance, error) {
	if instanceFile != "" {
		instance, err := model.InstanceFromJson(instanceFile)
		if err != nil {
			return model.Instance{}, err
		}
		if instance.OccupancyCeiling == 0 {
			instance.OccupancyCeiling = occupancyCeiling
		}
		if instance.SplitThreshold == 0 {
			instance.SplitThreshold = splitThreshold
		}
		if instance.Weights == (model.Weights{}) {
			instance.Weights = model.DefaultWeights()
		}
		return instance, nil
	}

	disciplines, err := csvio.LoadDisciplines(coursesFile)
	if err != nil {
		return model.Instance{}, err
	}
	rooms, err := csvio.LoadRooms(roomsFile)
	if err != nil {
		return model.Instance{}, err
	}

	weights := model.DefaultWeights()
	if weightsFile != "" {
		weights, err = LoadWeights(weightsFile)
		if err != nil {
			return model.Instance{}, err
		}
	}

	return model.Instance{
		Disciplines:      disciplines,
		Rooms:            rooms,
		OccupancyCeiling: occupancyCeiling,
		SplitThreshold:   splitThreshold,
		Weights:          weights,
	}, nil
}

func init() {
	solveCmd.Flags().StringVar(&instanceFile, "instance", "", "Path to a self-contained JSON instance; overrides --courses/--rooms")
	solveCmd.Flags().StringVar(&coursesFile, "courses", "courses_data.csv", "Path to the courses CSV")
	solveCmd.Flags().StringVar(&roomsFile, "rooms", "rooms_data.csv", "Path to the rooms CSV")
	solveCmd.Flags().StringVar(&weightsFile, "weights", "", "Path to a YAML file with penalty weights (defaults apply when empty)")
	solveCmd.Flags().StringVar(&outFile, "out", "", "Path for the allocation report CSV; printed to stdout when empty")
	solveCmd.Flags().StringVar(&solverName, "solver", "cbc", "MILP solver to use: \"cbc\" or \"glpsol\"")
	solveCmd.Flags().IntVar(&timeoutSeconds, "timeout", 60, "Solver time limit in seconds")
	solveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log verbosity level")
	solveCmd.Flags().Float64Var(&occupancyCeiling, "occupancy-ceiling", 1.2, "Allowed fraction of room capacity before the excess penalty")
	solveCmd.Flags().IntVar(&splitThreshold, "split-threshold", 50, "Minimum enrollment for an authorized discipline to be split")

	rootCmd.AddCommand(solveCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
