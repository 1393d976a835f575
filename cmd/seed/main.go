package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/applymate/applymate-backend/internal/di"
	"github.com/applymate/applymate-backend/internal/repository"
	"github.com/applymate/applymate-backend/internal/service"
)

// seed registers a pre-verified account for local development, skipping the
// email round-trip.
func main() {
	var (
		envFile   string
		email     string
		password  string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a verified development account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil {
				log.Println("no env file found, reading from environment")
			}
			application, err := di.InitializeApp()
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if healthy, statuses := application.Health.Check(ctx); !healthy {
				for _, s := range statuses {
					if !s.Healthy {
						fmt.Printf("unhealthy: %s: %s\n", s.Component, s.Detail)
					}
				}
				return errors.New("dependencies not ready")
			}

			result, err := application.Auth.Register(ctx, service.RegisterRequest{
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				if errors.Is(err, service.ErrEmailAlreadyRegistered) {
					fmt.Printf("account already exists: %s\n", email)
					return nil
				}
				return err
			}
			if err := repository.NewUserRepository(application.DB).MarkEmailVerified(result.UserID); err != nil {
				return err
			}
			fmt.Printf("seeded verified account %s (%s)\n", email, result.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "path to env file")
	cmd.Flags().StringVar(&email, "email", "dev@applymate.local", "account email")
	cmd.Flags().StringVar(&password, "password", "Dev3loper!pw", "account password")
	cmd.Flags().StringVar(&firstName, "first-name", "Dev", "account first name")
	cmd.Flags().StringVar(&lastName, "last-name", "User", "account last name")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
