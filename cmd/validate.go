package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fabrica-db/fabrica/internal/datagen"
	"github.com/fabrica-db/fabrica/internal/schema"
)

var (
	valSchemaFile string
	valShowDDL    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a schema document without touching a database",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := schema.Load(valSchemaFile)
		if err != nil {
			return err
		}

		if err := schema.Validate(tables); err != nil {
			return err
		}

		order, err := datagen.PopulationOrder(tables)
		if err != nil {
			return err
		}

		color.Green("Schema OK: %d tables", len(tables))
		fmt.Println("Population order:")
		for i, name := range order {
			fmt.Printf("  %d. %s\n", i+1, name)
		}

		if valShowDDL {
			for i := range tables {
				fmt.Println()
				fmt.Println(schema.DDL(&tables[i]))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&valSchemaFile, "schema", "s", "schema.json", "Schema document (.json, .yaml)")
	validateCmd.Flags().BoolVar(&valShowDDL, "ddl", false, "Print the CREATE TABLE statements")
}
