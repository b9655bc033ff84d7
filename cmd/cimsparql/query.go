package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statnett/cimsparql/pkg/config"
	"github.com/statnett/cimsparql/pkg/export"
	"github.com/statnett/cimsparql/pkg/queries"
	"github.com/statnett/cimsparql/pkg/template"
)

var queryCmd = &cobra.Command{
	Use:   "query [name]",
	Short: "Run a catalog query against the connected store",
	Long: `Run one of the named catalog queries and print or export the typed
result table. Use "cimsparql queries" to list the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the query catalog",
	RunE:  listQueries,
}

var (
	queryRegion string
	queryRate   string
	queryFormat string
	queryOutput string
)

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(queriesCmd)

	queryCmd.Flags().StringVar(&queryRegion, "region", "", "region filter, a regular expression matched against area names")
	queryCmd.Flags().StringVar(&queryRate, "rate", "", "operational limit set, e.g. Normal")
	queryCmd.Flags().StringVar(&queryFormat, "format", "", "output format (json, csv, parquet)")
	queryCmd.Flags().StringVar(&queryOutput, "output", "", "output file (default stdout; required for parquet)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	model, err := connectModel(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	params := template.Parameters{}
	if queryRegion != "" {
		params["region"] = queryRegion
	}
	if queryRate != "" {
		params["rate"] = queryRate
	}

	tbl, err := model.Query(cmd.Context(), args[0], params)
	if err != nil {
		return err
	}

	format := queryFormat
	if format == "" {
		format = cfg.Export.Format
	}
	switch format {
	case "json", "":
		out := os.Stdout
		if queryOutput != "" {
			f, err := os.Create(queryOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(export.Records(tbl))
	case "csv":
		out := os.Stdout
		if queryOutput != "" {
			f, err := os.Create(queryOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return export.WriteCSV(out, tbl)
	case "parquet":
		if queryOutput == "" {
			return fmt.Errorf("parquet output requires --output")
		}
		return export.WriteParquet(queryOutput, tbl)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func listQueries(cmd *cobra.Command, args []string) error {
	names, err := queries.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		entry, err := queries.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-24s %s\n", name, entry.Description)
	}
	return nil
}
