package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/censusflat/internal/graph"
	"github.com/ppiankov/censusflat/internal/pipeline"
)

var (
	graphURI      string
	graphUser     string
	graphPassword string
	graphDatabase string
	graphRate     float64
	noSchema      bool
	graphTimeout  time.Duration
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Load flattened documents into Neo4j",
}

var graphPushCmd = &cobra.Command{
	Use:   "push <simple.json>",
	Short: "Merge records, people and relationships into Neo4j",
	Long: `Push loads a flattened document into Neo4j:
- (:Record) nodes keyed by record id
- (:Person) nodes keyed by person id, linked with LISTED_IN
- RELATES_TO edges from each person's relationships

Nodes and edges are merged, so pushing the same document twice is safe.
The password is best given through CENSUSFLAT_GRAPH_PASSWORD.

Example:
  censusflat graph push KentuckyCensus-simple.json --uri neo4j://localhost:7687`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"graph.uri":        "uri",
			"graph.user":       "user",
			"graph.password":   "password",
			"graph.database":   "database",
			"graph.rate_limit": "rate",
		})
	},
	RunE: runGraphPush,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.AddCommand(graphPushCmd)

	graphPushCmd.Flags().StringVar(&graphURI, "uri", "neo4j://localhost:7687", "Neo4j URI")
	graphPushCmd.Flags().StringVar(&graphUser, "user", "neo4j", "Neo4j user")
	graphPushCmd.Flags().StringVar(&graphPassword, "password", "", "Neo4j password")
	graphPushCmd.Flags().StringVar(&graphDatabase, "database", "neo4j", "Neo4j database")
	graphPushCmd.Flags().Float64Var(&graphRate, "rate", 0, "max records written per second (0: unlimited)")
	graphPushCmd.Flags().BoolVar(&noSchema, "no-schema", false, "skip creating uniqueness constraints")
	graphPushCmd.Flags().DurationVar(&graphTimeout, "timeout", 5*time.Minute, "timeout for the whole push")
}

func runGraphPush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := pipeline.LoadOutput(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), graphTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Connecting to %s...\n", cfg.Graph.URI)
	driver, err := graph.NewNeo4jDriver(ctx, cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password, cfg.Graph.Database)
	if err != nil {
		return err
	}
	defer func() { _ = driver.Close(context.Background()) }()

	exporter := graph.NewExporter(driver).WithRateLimit(cfg.Graph.RateLimit)
	if !noSchema {
		if err := exporter.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	stats, err := exporter.Export(ctx, doc)
	if err != nil {
		return fmt.Errorf("push failed after %d records: %w", stats.Records, err)
	}

	fmt.Fprintf(os.Stderr, "✓ Pushed %d records, %d people, %d relationships\n", stats.Records, stats.People, stats.Relationships)
	return nil
}
