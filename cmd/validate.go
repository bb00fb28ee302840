package cmd

import (
	"fmt"
	"time"

	"node-manager/core/config"
	"node-manager/core/etcd"
	"node-manager/core/logger"
	"node-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the validate command
	validateFile    string
	validateBucket  bool
	validatePrefix  string
	validateWorkers int
	validateStrict  bool
	validateJSON    bool
	validateAudit   bool
)

// validateCmd checks every manifest record against the inventory store.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate manifest records against the inventory store",
	Long: `Reads a node manifest and compares every record with the document the
inventory store holds for it. Each record ends up in one of three states:

  PASS         every declared field matches the stored document
  CONDITIONAL  declared fields absent from the stored document, none mismatch
  FAIL         at least one declared field differs, or the node is absent

A batch containing FAIL records still exits zero; the exit code reports
operational problems only.

Examples:
  # Validate the default manifest file
  node-manager validate

  # Validate with a worker pool and save per-record evidence
  node-manager validate --file cluster-a.yaml --workers 4 --json

  # Also flag stored fields the manifest never declared
  node-manager validate --strict`,
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFile, "file", "nodes.yaml", "Manifest file to load")
	validateCmd.Flags().BoolVar(&validateBucket, "bucket", false, "Load the manifest from the configured storage bucket instead of a file")
	validateCmd.Flags().StringVar(&validatePrefix, "prefix", "", "Object prefix within the manifest bucket (defaults to the configured prefix)")
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0, "Bounded worker pool size (0 or 1 runs sequentially)")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Report stored fields that the manifest does not declare")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Save the full per-record report as JSON")
	validateCmd.Flags().BoolVar(&validateAudit, "audit", false, "Record the run in the audit database")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	startTime := time.Now()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	// Manifest problems abort the batch before anything reaches the store.
	records, err := loadRecords(ctx, cmd, cfg, logg, validateFile, validateBucket, validatePrefix)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	store, err := etcd.NewClient(cfg.Etcd)
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}

	reporter, err := buildReporter(cfg, logg, validateAudit)
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(store, reporter, reconcile.Options{
		Workers: validateWorkers,
		Strict:  validateStrict,
	})
	summary := engine.ValidateAll(ctx, records)

	if validateJSON {
		filename, err := saveReport("validation_nodes", summary)
		if err != nil {
			return err
		}
		logg.Info("Detailed JSON report saved", zap.String("file", filename), zap.Int("records", summary.Total))
	}

	executionTime := time.Since(startTime)

	// Always display metrics
	fmt.Println("\n=== Node Validation Metrics ===")
	fmt.Printf("Total Records: %d\n", summary.Total)
	fmt.Printf("Passed: %d\n", summary.Passed)
	fmt.Printf("Conditional: %d\n", summary.Conditional)
	fmt.Printf("Failed: %d\n", summary.Failed)
	fmt.Printf("Execution Time: %s\n", executionTime.String())

	logg.Info("Node validation completed",
		zap.Int("total", summary.Total),
		zap.Int("passed", summary.Passed),
		zap.Int("conditional", summary.Conditional),
		zap.Int("failed", summary.Failed),
		zap.Duration("execution_time", executionTime),
	)

	// FAIL records are findings, not operational errors.
	return nil
}
