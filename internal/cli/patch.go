package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/censusflat/internal/overwrite"
	"github.com/ppiankov/censusflat/internal/pipeline"
)

var (
	patchTable string
	patchOut   string
)

// patchCmd represents the patch command
var patchCmd = &cobra.Command{
	Use:   "patch <simple.json>",
	Short: "Overwrite person relationships from a verified table",
	Long: `Patch replaces the relationships of every person named in a YAML table
with the manually verified ones from that table. The flattened document is
rewritten in place unless --output is given.

Names or ids that cannot be resolved are reported as warnings and skipped.
Running the same table twice gives the same document.

Example:
  censusflat patch KentuckyCensus-simple.json --table configs/kentucky-1850-relationships.yaml`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"patch.table": "table",
		})
	},
	RunE: runPatch,
}

func init() {
	rootCmd.AddCommand(patchCmd)

	patchCmd.Flags().StringVar(&patchTable, "table", "", "YAML relationship table")
	patchCmd.Flags().StringVarP(&patchOut, "output", "o", "", "output path (default: overwrite input)")
}

func runPatch(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Patch.Table == "" {
		return fmt.Errorf("no relationship table: use --table or set patch.table in the config")
	}

	table, err := overwrite.LoadTable(cfg.Patch.Table)
	if err != nil {
		return err
	}

	doc, err := pipeline.LoadOutput(input)
	if err != nil {
		return err
	}

	report := overwrite.Apply(doc, table)

	output := patchOut
	if output == "" {
		output = input
	}
	if err := pipeline.WriteJSON(output, doc); err != nil {
		return fmt.Errorf("write patched document: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n✓ Relationships updated: %d people, %d warnings\n", len(report.Updated), len(report.Warnings))
	return nil
}
