package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/database"
)

var printSchema bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the database schema",
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the tables if they do not exist",
	Long: `Apply the idempotent schema to the configured PostgreSQL database.

Running it again against an up-to-date database changes nothing.

Examples:
  intakectl schema apply
  intakectl schema apply --print > schema.sql`,
	Args: cobra.NoArgs,
	RunE: runSchemaApply,
}

func init() {
	schemaApplyCmd.Flags().BoolVar(&printSchema, "print", false, "Print the schema instead of applying it")
	schemaCmd.AddCommand(schemaApplyCmd)
}

func runSchemaApply(cmd *cobra.Command, args []string) error {
	if printSchema {
		fmt.Fprint(cmd.OutOrStdout(), database.Schema())
		return nil
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	db, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ApplySchema(ctx); err != nil {
		return err
	}

	printf("schema applied to %s", cfg.Postgres.Database)
	return nil
}
