package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/censusflat/internal/census"
	"github.com/ppiankov/censusflat/internal/model"
	"github.com/ppiankov/censusflat/internal/pipeline"
)

var (
	flattenOut      string
	flattenVariant  string
	flattenMaxDepth int
	noCache         bool
)

// flattenCmd represents the flatten command
var flattenCmd = &cobra.Command{
	Use:   "flatten <export.json>",
	Short: "Flatten one census export",
	Long: `Flatten reads a census export shaped as {"elements": [...]} and writes
{"records": [...]}: one entry per RECORD with people, their attributes,
their relationships and a record-level relationship graph.

Variants:
  full   people, relationships, relationship graph, document date/place fallback
  basic  people and attributes only

The relationship label of a person comes from the first relationship found
below it (COUPLE: Spouse, PARENT_CHILD: Child, SIBLING: Sibling). When there
is none, and always in the basic variant, the RELATIONSHIP_TO_HEAD field is
used, so a head of household reads "Head" rather than an empty label.

Example:
  censusflat flatten 3_1_3Q9M-CSVR-T893.json
  censusflat flatten 1950Census.json --variant basic -o 1950Census-simple.json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"flatten.variant":   "variant",
			"flatten.max_depth": "max-depth",
		})
	},
	RunE: runFlatten,
}

func init() {
	rootCmd.AddCommand(flattenCmd)

	flattenCmd.Flags().StringVarP(&flattenOut, "output", "o", "", "output path (default: <input>-simple.json)")
	flattenCmd.Flags().StringVar(&flattenVariant, "variant", string(model.VariantFull), "projection variant (full, basic)")
	flattenCmd.Flags().IntVar(&flattenMaxDepth, "max-depth", 10, "maximum subElements depth to descend")
	flattenCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (always re-flatten)")
}

func runFlatten(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	output := flattenOut
	if output == "" {
		output = pipeline.OutputPath(input, cfg.Output.Suffix)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Loading %s...\n", input)
	res, err := p.Flatten(context.Background(), input)
	if err != nil {
		return fmt.Errorf("flatten failed: %w", err)
	}

	if res.Cached {
		fmt.Fprintf(os.Stderr, "Using cached result\n")
	} else {
		fmt.Fprintf(os.Stderr, "Processed %d elements\n", res.Elements)
	}
	if resolvedVariant(cfg) == model.VariantFull {
		fmt.Fprintf(os.Stderr, "Document date: %s\n", orNotFound(res.Metadata.Date))
		fmt.Fprintf(os.Stderr, "Document place: %s\n", orNotFound(res.Metadata.Place))
	}
	fmt.Fprintf(os.Stderr, "Found %d records with people\n", len(res.Output.Records))
	fmt.Fprintf(os.Stderr, "Total people: %d\n", res.Output.PeopleCount())

	fmt.Fprintf(os.Stderr, "Writing to %s...\n", output)
	if err := pipeline.WriteJSON(output, res.Output); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Done (%v)\n", res.Duration.Round(1e6))
	return nil
}

// resolvedVariant is the variant the flattener will actually run, with an
// unset value meaning full
func resolvedVariant(cfg *model.Config) model.Variant {
	return census.OptionsFromConfig(cfg.Flatten).Variant
}

func orNotFound(s string) string {
	if s == "" {
		return "Not found"
	}
	return s
}
