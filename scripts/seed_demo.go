// Seeds a database with demo users and items from a YAML file.
//
// Usage: go run scripts/seed_demo.go -db data/shareit.db -seed scripts/seed.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type seedConfig struct {
	Users []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
		Items []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Available   bool   `yaml:"available"`
		} `yaml:"items"`
	} `yaml:"users"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath := flag.String("db", "data/shareit.db", "path to the sqlite database")
	seedPath := flag.String("seed", "scripts/seed.yaml", "path to the seed file")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedConfig
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, u := range seed.Users {
		user := &models.User{Name: u.Name, Email: u.Email}
		if err := db.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		logger.Info().Int64("id", user.ID).Str("email", user.Email).Msg("user created")

		for _, i := range u.Items {
			item := &models.Item{
				Name:        i.Name,
				Description: i.Description,
				Available:   i.Available,
				OwnerID:     user.ID,
			}
			if err := db.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("create item %s: %w", i.Name, err)
			}
			logger.Info().Int64("id", item.ID).Str("name", item.Name).Msg("item created")
		}
	}

	return nil
}
