package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/applymate/applymate-backend/internal/di"
)

func main() {
	var envFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the credential store schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil {
				log.Println("no env file found, reading from environment")
			}
			runner, err := di.InitializeMigrationRunner()
			if err != nil {
				return err
			}
			return runner.Run()
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "path to env file")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
