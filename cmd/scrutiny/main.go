// Command scrutiny runs one deterministic election computation from a
// YAML manifest and reports the outcome.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/frontier"
	"github.com/veralin/scrutiny/pipeline"
)

var (
	verbose      bool
	manifestPath string
	recordOut    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scrutiny",
	Short: "scrutiny - deterministic election computation",
	Long: `scrutiny tabulates ballots, allocates seats, applies the
legitimacy gates and maps the change frontier, all from a single YAML
manifest. Every run is a pure function of its inputs: identical
manifests produce identical records, tie draws included.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one run from a manifest",
	Long: `Loads the manifest, validates the universe and parameters, and
executes the four stages in order:
  1. Tabulate: per-unit scores under the configured ballot family
  2. Allocate: seats or power per unit, national top-up for mixed_member
  3. Gates: quorum, majority, double-majority and symmetry verdicts
  4. Frontier: status bands and contiguity flags, only on a passing verdict`,
	RunE: runManifest,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a manifest without running it",
	RunE:  validateManifest,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "manifest.yaml", "path to the run manifest")
	runCmd.Flags().StringVarP(&recordOut, "out", "o", "", "write the full run record as YAML to this file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

func loadManifest() (pipeline.Inputs, pipeline.Params, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return pipeline.Inputs{}, pipeline.Params{}, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return pipeline.DecodeManifest(f)
}

func runManifest(cmd *cobra.Command, args []string) error {
	in, p, err := loadManifest()
	if err != nil {
		return err
	}

	rec, err := pipeline.NewEngine(logger).Run(cmd.Context(), in, p)
	if err != nil {
		return err
	}

	printSummary(rec)

	if recordOut != "" {
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if err := os.WriteFile(recordOut, data, 0o644); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		logger.Info("record written", zap.String("path", recordOut))
	}
	return nil
}

func validateManifest(cmd *cobra.Command, args []string) error {
	in, _, err := loadManifest()
	if err != nil {
		return err
	}
	fmt.Printf("manifest ok: %d units, %d ballot sets, %d edges\n",
		in.Registry.Len(), len(in.Ballots), len(in.Edges))
	return nil
}

// printSummary writes the human-readable outcome: per-unit seats in
// canonical order, the gate verdicts, and the frontier counters.
func printSummary(rec *pipeline.RunRecord) {
	for _, ur := range rec.Units {
		fmt.Printf("unit %s:", ur.UnitID)
		ids := make([]core.OptionID, 0, len(ur.Allocation.Seats))
		for id := range ur.Allocation.Seats {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			fmt.Printf(" %s=%d", id, ur.Allocation.Seats[id])
		}
		fmt.Println()
	}
	if len(rec.TieEvents) > 0 {
		fmt.Printf("ties resolved: %d\n", len(rec.TieEvents))
	}
	if rec.MMP != nil {
		fmt.Printf("mixed-member house: target %d, effective %d\n",
			rec.MMP.TargetHouse, rec.MMP.EffectiveHouse)
	}
	fmt.Printf("gates: quorum=%t majority=%t double_majority=%t symmetry=%t pass=%t\n",
		rec.Gates.Quorum, rec.Gates.Majority, rec.Gates.DoubleMajority,
		rec.Gates.Symmetry, rec.Gates.Pass)
	if rec.Frontier != nil {
		printFrontier(rec.Frontier)
	}
}

func printFrontier(out *frontier.Out) {
	statuses := make([]string, 0, len(out.StatusCounts))
	for s := range out.StatusCounts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	fmt.Print("frontier:")
	for _, s := range statuses {
		fmt.Printf(" %s=%d", s, out.StatusCounts[s])
	}
	fmt.Printf(" (mediation=%d enclaves=%d overrides=%d)\n",
		out.MediationCount, out.EnclaveCount, out.ProtectedOverrideCount)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
