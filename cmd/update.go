package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"node-manager/core/config"
	"node-manager/core/database"
	"node-manager/core/etcd"
	"node-manager/core/logger"
	"node-manager/core/manifest"
	"node-manager/core/node"
	"node-manager/core/reconcile"
	"node-manager/core/storage"
	"node-manager/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the update command
	updateFile    string
	updateBucket  bool
	updatePrefix  string
	updateWorkers int
	updateJSON    bool
	updateAudit   bool
)

// updateCmd pushes every manifest record into the inventory store.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Push manifest records to the inventory store",
	Long: `Reads a node manifest and writes every record to the etcd-backed
inventory store. Records are written independently: a failed write is
tallied and reported but never aborts the rest of the batch.

Examples:
  # Update from the default manifest file
  node-manager update

  # Update from a specific file with a bounded worker pool
  node-manager update --file cluster-a.yaml --workers 4

  # Update from the manifest bucket and record the run in the audit trail
  node-manager update --bucket --audit`,
	RunE: runUpdate,
}

func init() {
	RootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateFile, "file", "nodes.yaml", "Manifest file to load")
	updateCmd.Flags().BoolVar(&updateBucket, "bucket", false, "Load the manifest from the configured storage bucket instead of a file")
	updateCmd.Flags().StringVar(&updatePrefix, "prefix", "", "Object prefix within the manifest bucket (defaults to the configured prefix)")
	updateCmd.Flags().IntVar(&updateWorkers, "workers", 0, "Bounded worker pool size (0 or 1 runs sequentially)")
	updateCmd.Flags().BoolVar(&updateJSON, "json", false, "Save the full per-record report as JSON")
	updateCmd.Flags().BoolVar(&updateAudit, "audit", false, "Record the run in the audit database")
}

func runUpdate(cmd *cobra.Command, args []string) error {
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
	records, err := loadRecords(ctx, cmd, cfg, logg, updateFile, updateBucket, updatePrefix)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	store, err := etcd.NewClient(cfg.Etcd)
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}

	reporter, err := buildReporter(cfg, logg, updateAudit)
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(store, reporter, reconcile.Options{Workers: updateWorkers})
	summary := engine.WriteAll(ctx, records)

	if updateJSON {
		filename, err := saveReport("update_nodes", summary)
		if err != nil {
			return err
		}
		logg.Info("Detailed JSON report saved", zap.String("file", filename), zap.Int("records", summary.Total))
	}

	executionTime := time.Since(startTime)

	// Always display metrics
	fmt.Println("\n=== Node Update Metrics ===")
	fmt.Printf("Total Records: %d\n", summary.Total)
	fmt.Printf("Succeeded: %d\n", summary.Succeeded)
	fmt.Printf("Failed: %d\n", summary.Failed)
	fmt.Printf("Execution Time: %s\n", executionTime.String())

	logg.Info("Node update completed",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("execution_time", executionTime),
	)

	// Failed writes are part of the report, not an operational error.
	return nil
}

// loadRecords resolves the manifest source for a batch command. Files are
// the default; --bucket switches to the deployment's manifest bucket.
func loadRecords(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logg *zap.Logger, file string, useBucket bool, prefix string) ([]*node.Record, error) {
	if useBucket {
		if cmd.Flags().Changed("file") {
			return nil, fmt.Errorf("--file and --bucket are mutually exclusive")
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if prefix == "" {
			prefix = cfg.Storage.Prefix
		}
		logg.Info("Loading manifest from bucket", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", prefix))
		return manifest.LoadBucket(ctx, client, cfg.Storage.Bucket, prefix)
	}

	logg.Info("Loading manifest file", zap.String("file", file))
	return manifest.LoadFile(file)
}

// buildReporter wires the console reporter, adding the audit recorder when
// requested. The audit trail needs a reachable database; unlike serve mode,
// --audit treats a failed connection as an operational error.
func buildReporter(cfg *config.Config, logg *zap.Logger, audit bool) (reconcile.Reporter, error) {
	console := reconcile.NewZapReporter(logg)
	if !audit {
		return console, nil
	}

	if !cfg.Database.IsValidDriver() {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required for --audit: %w", err)
	}
	if err := history.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to prepare audit schema: %w", err)
	}

	return reconcile.NewMultiReporter(console, history.NewRecorder(db, logg)), nil
}

// saveReport writes an indented JSON report into the working directory
// and returns the generated filename.
func saveReport(prefix string, report any) (string, error) {
	filename := fmt.Sprintf("%s_%d.json", prefix, time.Now().Unix())
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save JSON file: %w", err)
	}
	return filename, nil
}
