package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/censusflat/internal/logger"
	"github.com/ppiankov/censusflat/internal/pipeline"
	"github.com/ppiankov/censusflat/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	listFile     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [export.json...]",
	Short: "Flatten many census exports in parallel",
	Long: `Batch flattens several exports concurrently:
- Inputs come from the arguments and/or a list file (one path per line)
- Each document is flattened by one worker
- Each output is written to --output-dir as <input>-simple.json

Example:
  censusflat batch exports/*.json --output-dir ./simple
  censusflat batch --list exports.txt --concurrency 8`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"concurrency.workers": "concurrency",
			"flatten.variant":     "variant",
			"flatten.max_depth":   "max-depth",
		})
	},
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", ".", "output directory for flattened documents")
	batchCmd.Flags().StringVar(&listFile, "list", "", "file listing input paths, one per line")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&flattenVariant, "variant", "full", "projection variant (full, basic)")
	batchCmd.Flags().IntVar(&flattenMaxDepth, "max-depth", 10, "maximum subElements depth to descend")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (always re-flatten)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputs := append([]string{}, args...)
	if listFile != "" {
		listed, err := worker.ReadPathsFromFile(listFile)
		if err != nil {
			return err
		}
		inputs = append(inputs, listed...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs: pass export files or --list")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  censusflat batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Inputs:       %d\n", len(inputs))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Variant:      %s\n", cfg.Flatten.Variant)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	start := time.Now()
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessFiles(ctx, inputs, outputDir, cfg.Output.Suffix)
	if err != nil {
		return err
	}

	var failed, people, records int
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", r.Input, r.Error)
			continue
		}
		records += len(r.Result.Output.Records)
		people += r.Result.Output.PeopleCount()
		fmt.Fprintf(os.Stderr, "  ✓ %s → %s (%d records)\n", r.Input, r.OutputPath, len(r.Result.Output.Records))
		logger.Debug("flattened", "input", r.Input, "cached", r.Result.Cached, "duration", r.Result.Duration)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Succeeded:    %d\n", len(results)-failed)
	fmt.Fprintf(os.Stderr, "  Failed:       %d\n", failed)
	fmt.Fprintf(os.Stderr, "  Records:      %d\n", records)
	fmt.Fprintf(os.Stderr, "  People:       %d\n", people)
	fmt.Fprintf(os.Stderr, "  Duration:     %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}
