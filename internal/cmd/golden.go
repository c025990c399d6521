package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/MeKo-Tech/hexnoise/internal/golden"
	"github.com/MeKo-Tech/hexnoise/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var goldenCmd = &cobra.Command{
	Use:   "golden",
	Short: "Record or verify golden reference values",
	Long: `Golden fixtures pin the exact output of the noise field for a set of
inputs so that every implementation can be checked against the same literals.`,
}

var goldenRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Evaluate fixtures and store the results in a SQLite database",
	RunE:  runGoldenRecord,
}

var goldenVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Evaluate fixtures and fail on any mismatch",
	RunE:  runGoldenVerify,
}

func init() {
	rootCmd.AddCommand(goldenCmd)
	goldenCmd.AddCommand(goldenRecordCmd, goldenVerifyCmd)

	goldenCmd.PersistentFlags().String("fixtures", "testdata/golden.yaml", "Fixture file (YAML)")
	goldenCmd.PersistentFlags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	goldenCmd.PersistentFlags().Bool("progress", false, "Show a progress bar")

	goldenRecordCmd.Flags().String("db", "golden.db", "SQLite database for recorded runs")
	goldenRecordCmd.Flags().String("label", "", "Label stored with the run")
	goldenRecordCmd.Flags().Bool("update", false, "Rewrite expected values in the fixture file with the evaluated ones")

	goldenVerifyCmd.Flags().String("db", "", "Also record the run in this SQLite database")
	goldenVerifyCmd.Flags().StringSlice("case", nil, "Only verify the named cases (repeatable)")

	for key, flag := range map[string]string{
		"golden.fixtures": "fixtures",
		"golden.workers":  "workers",
		"golden.progress": "progress",
	} {
		if err := viper.BindPFlag(key, goldenCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
		}
	}
	bindFlags(goldenRecordCmd, map[string]string{
		"golden.record.db":     "db",
		"golden.record.label":  "label",
		"golden.record.update": "update",
	})
	bindFlags(goldenVerifyCmd, map[string]string{
		"golden.verify.db":    "db",
		"golden.verify.cases": "case",
	})
}

func runGoldenRecord(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	fixtures := viper.GetString("golden.fixtures")
	dbPath := viper.GetString("golden.record.db")
	label := viper.GetString("golden.record.label")
	update := viper.GetBool("golden.record.update")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	set, outcomes, err := evaluateFixtures(ctx, fixtures, nil)
	if err != nil {
		return err
	}

	runID, err := recordOutcomes(dbPath, label, outcomes)
	if err != nil {
		return err
	}

	report := golden.NewReport(outcomes)
	logger.Info("Recorded golden run",
		"run", runID,
		"db", dbPath,
		"cases", report.Total,
		"passed", report.Passed,
		"mismatched", len(report.Mismatches),
	)

	if update && len(report.Mismatches) > 0 {
		if err := golden.WriteFixtures(fixtures, golden.Update(set, outcomes)); err != nil {
			return err
		}
		logger.Info("Updated fixture expectations", "fixtures", fixtures, "changed", len(report.Mismatches))
	}
	return nil
}

func runGoldenVerify(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	fixtures := viper.GetString("golden.fixtures")
	dbPath := viper.GetString("golden.verify.db")
	names := viper.GetStringSlice("golden.verify.cases")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, outcomes, err := evaluateFixtures(ctx, fixtures, names)
	if err != nil {
		return err
	}

	if dbPath != "" {
		if _, err := recordOutcomes(dbPath, "verify", outcomes); err != nil {
			return err
		}
	}

	report := golden.NewReport(outcomes)
	out := cmd.OutOrStdout()
	for _, o := range report.Mismatches {
		fmt.Fprintf(out, "FAIL %s %s: got %d, want %d\n", o.Case.Name, o.Case, o.Got, o.Case.Want)
	}
	fmt.Fprintf(out, "%d/%d golden cases passed\n", report.Passed, report.Total)

	return report.Err()
}

// evaluateFixtures loads path and evaluates the named cases, or all of them
// when names is empty, through the worker pool. Evaluation errors abort;
// mismatches are left to the caller.
func evaluateFixtures(ctx context.Context, path string, names []string) (golden.FixtureSet, []golden.Outcome, error) {
	set, err := golden.LoadFixtures(path)
	if err != nil {
		return golden.FixtureSet{}, nil, err
	}
	if set, err = set.Select(names); err != nil {
		return golden.FixtureSet{}, nil, err
	}

	workers := viper.GetInt("golden.workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	progress := worker.NewProgress(len(set.Cases), viper.GetBool("golden.progress"))

	log().Debug("Evaluating fixtures", "fixtures", path, "cases", len(set.Cases), "workers", workers)

	pool := worker.New(worker.Config{
		Workers:    workers,
		OnProgress: progress.Callback(),
	})
	results := pool.Run(ctx, worker.Tasks(set.Cases))
	progress.Done()

	// Cases never handed to a worker produce no result at all.
	if err := ctx.Err(); err != nil {
		return set, nil, err
	}

	outcomes := make([]golden.Outcome, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Task.Case.Name, r.Err))
			continue
		}
		outcomes = append(outcomes, r.Outcome())
	}
	if len(errs) > 0 {
		return set, nil, errors.Join(errs...)
	}

	log().Debug(progress.Summary())
	return set, outcomes, nil
}

func recordOutcomes(dbPath, label string, outcomes []golden.Outcome) (string, error) {
	store, err := golden.Open(dbPath)
	if err != nil {
		return "", err
	}

	run, err := store.BeginRun(label)
	if err != nil {
		store.Close()
		return "", err
	}

	for _, o := range outcomes {
		if err := store.Record(run.ID, o); err != nil {
			store.Close()
			return "", err
		}
	}

	if err := store.Close(); err != nil {
		return "", err
	}
	return run.ID, nil
}
