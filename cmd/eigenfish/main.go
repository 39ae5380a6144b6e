// Command eigenfish samples eigenvalue clouds and writes them as CSV for plotting.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nozzle/eigenfish"
	"github.com/nozzle/eigenfish/template"
)

var (
	version = "0.1.0"
)

// Shared flags.
var (
	dim        int
	numSamples int
	seed       int64
	numWorkers int
	numSlots   int
	slotsFlag  string
	matrixFile string
	population string
	double     bool
	outputFile string
	verbose    bool
)

// Subcommand flags.
var (
	rectRange   float64
	gaussStddev float64
	torusRadius float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eigenfish",
	Short: "Sample eigenvalue clouds of randomly parametrized matrices",
	Long: `eigenfish replaces a few cells of a square complex matrix with random
parameters, recomputes the eigenvalues for every draw and writes all of them
as "real,imag" CSV rows, ready for a scatter plot.

The template is read from --matrix or drawn at random from --population.
Parameter cells come from --slots ("row,col;row,col") or are chosen at
random (--num-slots of them).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var rectCmd = &cobra.Command{
	Use:   "rect",
	Short: "Draw parameters uniformly from [-range, range]",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(eigenfish.Uniform(rectRange), template.DefaultPopulation)
	},
}

var gaussianCmd = &cobra.Command{
	Use:   "gaussian",
	Short: "Draw parameters from a zero-mean normal distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(eigenfish.Normal(gaussStddev), template.DefaultPopulation)
	},
}

var torusCmd = &cobra.Command{
	Use:   "torus",
	Short: "Draw each parameter uniformly from a circle of the given radius",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(eigenfish.Circle(torusRadius), template.TorusPopulation)
	},
}

var gershgorinCmd = &cobra.Command{
	Use:   "gershgorin",
	Short: "Print Gershgorin disks of the template if it is a matrix of phases",
	RunE: func(cmd *cobra.Command, args []string) error {
		return gershgorin(template.DefaultPopulation)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&dim, "dim", "n", 5, "Matrix dimension for random templates")
	flags.IntVarP(&numSamples, "samples", "s", 100000, "Number of parameter draws")
	flags.Int64Var(&seed, "seed", 42, "Random seed")
	flags.IntVarP(&numWorkers, "workers", "w", 1, "Parallel workers (0 = one per CPU)")
	flags.IntVarP(&numSlots, "num-slots", "k", 2, "Number of random parameter slots when --slots is empty")
	flags.StringVar(&slotsFlag, "slots", "", `Parameter slots as "row,col;row,col"`)
	flags.StringVarP(&matrixFile, "matrix", "m", "", "CSV file with the matrix template")
	flags.StringVarP(&population, "population", "p", "", "Comma-separated values for random templates (default depends on command)")
	flags.BoolVar(&double, "double", false, "Compute and store eigenvalues at complex128 precision")
	flags.StringVarP(&outputFile, "output", "o", "eigenvalues.csv", "Output CSV file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rectCmd.Flags().Float64VarP(&rectRange, "range", "r", 20, "Half-width of the parameter interval")
	gaussianCmd.Flags().Float64Var(&gaussStddev, "stddev", 1, "Standard deviation of the parameters")
	torusCmd.Flags().Float64Var(&torusRadius, "radius", eigenfish.DefaultTorusRadius, "Circle radius")

	rootCmd.AddCommand(rectCmd)
	rootCmd.AddCommand(gaussianCmd)
	rootCmd.AddCommand(torusCmd)
	rootCmd.AddCommand(gershgorinCmd)
}
