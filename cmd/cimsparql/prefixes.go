package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/statnett/cimsparql/pkg/config"
)

var prefixesCmd = &cobra.Command{
	Use:   "prefixes",
	Short: "List the namespace bindings of the connected store",
	RunE:  runPrefixes,
}

func init() {
	rootCmd.AddCommand(prefixesCmd)
}

func runPrefixes(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	model, err := connectModel(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	prefixes := model.Prefixes()
	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-20s %s\n", name, prefixes[name])
	}
	return nil
}
