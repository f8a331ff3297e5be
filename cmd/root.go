package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var Version = "0.3.1"

var rootCmd = &cobra.Command{
	Use:   "fabrica",
	Short: "Generate referentially consistent fake data for relational schemas",
	Long: `Fabrica synthesizes realistic rows for a set of relational tables described
by a declarative schema: categorical fake values, statistically distributed
numerics, and foreign keys drawn from already-generated parent tables, so
primary/foreign-key and uniqueness constraints always hold.

Schemas and configs are JSON or YAML documents. The default target is an
in-memory SQLite database; PostgreSQL and MySQL are supported through the
same store interface.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)
}

func initEnv() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}
}
