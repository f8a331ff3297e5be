package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fabrica-db/fabrica/internal/config"
	"github.com/fabrica-db/fabrica/internal/datagen"
	"github.com/fabrica-db/fabrica/internal/display"
	"github.com/fabrica-db/fabrica/internal/schema"
	"github.com/fabrica-db/fabrica/internal/store"
)

var (
	genSchemaFile string
	genConfigFile string
	genSeed       int64
	genNoShow     bool
	genTruncate   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create tables and fill them with generated data",
	Long: `Load a schema document, create its tables in the configured store, populate
them in foreign-key dependency order, and print the resulting tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(genConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("seed") {
			cfg.RandomSeed = &genSeed
		}
		if genTruncate {
			cfg.OnExhausted = "truncate"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		tables, err := schema.Load(genSchemaFile)
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.Database.Provider, cfg.DSN())
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		engine := datagen.New(tables, cfg, st, datagen.WithProgress())
		report, err := engine.Run(context.Background())
		if err != nil {
			return err
		}

		if !genNoShow {
			if err := showTables(st, tables); err != nil {
				return err
			}
		}

		for table, missing := range report.Truncated {
			color.Yellow("Warning: %s is short %d rows (unique foreign key exhausted)", table, missing)
		}
		return nil
	},
}

func showTables(st store.Store, tables []schema.Table) error {
	ctx := context.Background()
	for i := range tables {
		t := &tables[i]
		columns := make([]string, len(t.Fields))
		for j, f := range t.Fields {
			columns[j] = f.Name
		}

		rows, err := st.Select(ctx, t.Name, columns)
		if err != nil {
			return err
		}
		display.ShowTable(os.Stdout, t.Name, columns, rows)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genSchemaFile, "schema", "s", "schema.json", "Schema document (.json, .yaml)")
	generateCmd.Flags().StringVarP(&genConfigFile, "config", "c", "", "Config document (num_records, random_seed)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Override the random seed")
	generateCmd.Flags().BoolVar(&genNoShow, "no-show", false, "Skip printing the generated tables")
	generateCmd.Flags().BoolVar(&genTruncate, "truncate-on-exhaustion", false, "Truncate tables instead of aborting when a unique foreign key runs out of parent keys")
}
