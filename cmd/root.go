package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hyposim/hyposim/hyptest"
	"github.com/hyposim/hyposim/hyptest/estimate"
	"github.com/hyposim/hyposim/study"
)

var (
	// CLI flags
	specPath   string  // Path to the YAML study spec
	seed       int64   // Seed override for the randomness source
	iterations int     // Iteration count override for the simulation
	logLevel   string  // Log verbosity level
	alpha      float64 // Significance level for power estimation
	powerRuns  int     // Number of resampled experiments for power estimation
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hyposim",
	Short: "Monte Carlo hypothesis testing and power estimation",
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadSpec reads the study spec and applies CLI overrides.
func loadSpec(cmd *cobra.Command) *study.Spec {
	if specPath == "" {
		logrus.Fatalf("Study spec not provided. Use --spec.")
	}
	spec, err := study.Load(specPath)
	if err != nil {
		logrus.Fatalf("Unable to read study spec: %v", err)
	}
	if cmd.Flags().Changed("seed") {
		spec.Seed = seed
	}
	if cmd.Flags().Changed("iterations") {
		spec.Iterations = iterations
	}
	return spec
}

// runCmd executes one hypothesis test described by a study spec
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hypothesis test described by a study spec",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		spec := loadSpec(cmd)

		logrus.Infof("Running study %q: test=%s seed=%d", spec.Name, spec.Test, spec.Seed)
		startTime := time.Now()

		result, err := study.Run(spec)
		if err != nil {
			logrus.Fatalf("Study failed: %v", err)
		}

		fmt.Printf("study:         %s\n", result.Name)
		fmt.Printf("test:          %s\n", result.Test)
		fmt.Printf("iterations:    %d\n", result.Iterations)
		fmt.Printf("observed stat: %g\n", result.ObservedStat)
		fmt.Printf("max simulated: %g\n", result.MaxSimulatedStat)
		fmt.Printf("p-value:       %g\n", result.PValue)

		logrus.Infof("Study complete in %v.", time.Since(startTime))
	},
}

// powerCmd estimates the power of the two-group mean test on a spec's data
var powerCmd = &cobra.Command{
	Use:   "power",
	Short: "Estimate statistical power for the two-group mean test",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		spec := loadSpec(cmd)

		if len(spec.GroupA) == 0 || len(spec.GroupB) == 0 {
			logrus.Fatalf("Power estimation requires group_a and group_b in the spec.")
		}
		testIters := spec.Iterations
		if testIters == 0 {
			testIters = study.DefaultIterations
		}

		rng := hyptest.NewPartitionedRNG(hyptest.NewStudyKey(spec.Seed)).ForSubsystem(hyptest.SubsystemEstimation)
		power, err := estimate.Power(spec.GroupA, spec.GroupB, powerRuns, testIters, alpha, rng)
		if err != nil {
			logrus.Fatalf("Power estimation failed: %v", err)
		}

		fmt.Printf("study:               %s\n", spec.Name)
		fmt.Printf("alpha:               %g\n", alpha)
		fmt.Printf("runs:                %d\n", powerRuns)
		fmt.Printf("power:               %g\n", power)
		fmt.Printf("false negative rate: %g\n", 1-power)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerCommonFlags attaches the flags shared by all subcommands.
func registerCommonFlags(c *cobra.Command) {
	c.Flags().StringVar(&specPath, "spec", "", "Path to the YAML study spec")
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for the randomness source (overrides the spec)")
	c.Flags().IntVar(&iterations, "iterations", study.DefaultIterations, "Number of simulation trials (overrides the spec)")
	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerCommonFlags(runCmd)
	registerCommonFlags(powerCmd)

	powerCmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance level for rejection")
	powerCmd.Flags().IntVar(&powerRuns, "runs", 100, "Number of resampled experiments")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(powerCmd)
}
