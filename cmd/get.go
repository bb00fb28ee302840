package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"node-manager/core/config"
	"node-manager/core/etcd"
	"node-manager/core/logger"
	"node-manager/core/node"
	"node-manager/core/reconcile"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getCmd represents the top-level get command
var getCmd = &cobra.Command{
	Use:   "get [hostname]",
	Short: "Fetch the stored document for a single node",
	Long: `Reads the inventory store entry for one hostname and prints the stored
YAML document. A missing node is a completed read, not an error: the command
reports the cause and still exits zero.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetNode(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(getCmd)
}

func runGetNode(ctx context.Context, hostname string) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := etcd.NewClient(cfg.Etcd)
	if err != nil {
		logg.Fatal("Failed to create store client", zap.Error(err))
	}

	engine := reconcile.NewEngine(store, nil, reconcile.Options{})

	logg.Info("Fetching node record...", zap.String("hostname", hostname))
	result := engine.ReadOne(ctx, hostname)

	// Pretty Console Output
	fmt.Println("\n--- Node Detail View ---")
	fmt.Printf("Query:          %s\n", hostname)

	statusColor := "\033[32m" // Green
	statusText := "FOUND"
	if result.NotFound() {
		statusColor = "\033[31m" // Red
		statusText = "NOT FOUND"
	}
	resetColor := "\033[0m"
	fmt.Printf("Status:         %s%s%s\n", statusColor, statusText, resetColor)
	fmt.Printf("Outcome:        %s\n", result.Outcome)

	if result.NotFound() {
		fmt.Println("------------------------")
		return
	}

	rec := node.FromMapping(result.Document)
	fmt.Println("------------------------")
	fmt.Printf("Hostname:       %s\n", rec.Hostname)
	fmt.Printf("IP Address:     %s\n", rec.IP)
	fmt.Printf("GPU Type:       %s\n", rec.GPUType)
	fmt.Printf("Driver:         %s\n", rec.NvidiaDriver)
	fmt.Printf("CUDA:           %s\n", rec.CUDAVersion)
	fmt.Printf("OS / Kernel:    %s / %s\n", rec.OS, rec.Kernel)
	fmt.Printf("Secure Boot:    %v\n", rec.SecureBoot)
	fmt.Printf("Monitoring:     %v\n", rec.MonitoringEnabled)
	if len(rec.Tags) > 0 {
		fmt.Printf("Tags:           %s\n", strings.Join(rec.Tags, ", "))
	}
	fmt.Println("------------------------")

	// The stored document, exactly as the store holds it.
	data, err := yaml.Marshal(result.Document)
	if err != nil {
		logg.Error("Failed to render stored document", zap.Error(err))
		return
	}
	fmt.Println("\nStored document:")
	fmt.Print(string(data))
}
