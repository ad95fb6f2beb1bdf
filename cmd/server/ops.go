package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/mahostav/api/migrations"
	"github.com/mahostav/api/pkg/jwt"
)

func migrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SurrealQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := connectDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			migs, err := migrations.All()
			if err != nil {
				return fmt.Errorf("load migrations: %w", err)
			}
			for _, m := range migs {
				if err := db.Execute(cmd.Context(), m.SQL, nil); err != nil {
					return fmt.Errorf("migration %s: %w", m.Name, err)
				}
				slog.Info("applied migration", slog.String("name", m.Name))
			}

			if seed {
				data, err := migrations.Seed()
				if err != nil {
					return fmt.Errorf("load seed data: %w", err)
				}
				if err := db.Execute(cmd.Context(), data, nil); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				slog.Info("applied seed data")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Also load the demo events")
	return cmd
}

func keygenCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RS256 key pair for signing access tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o700); err != nil {
				return fmt.Errorf("create key directory: %w", err)
			}

			privatePath := filepath.Join(outDir, "private.pem")
			publicPath := filepath.Join(outDir, "public.pem")
			if _, err := os.Stat(privatePath); err == nil {
				return fmt.Errorf("%s already exists", privatePath)
			}

			if err := jwt.GenerateKeyPair(privatePath, publicPath); err != nil {
				return fmt.Errorf("generate key pair: %w", err)
			}
			fmt.Printf("Wrote %s and %s\n", privatePath, publicPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "./keys", "Directory to write private.pem and public.pem")
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		userID     string
		email      string
		expMins    int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for operational use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			jwtService, err := jwt.NewService(jwt.Config{
				PrivateKeyPath: cfg.JWT.PrivateKeyPath,
				Issuer:         cfg.JWT.Issuer,
				ExpirationMins: cfg.JWT.ExpirationMins,
			})
			if err != nil {
				return fmt.Errorf("initialize JWT service: %w (generate keys with: keygen)", err)
			}

			expires := time.Now().Add(time.Duration(expMins) * time.Minute)
			token, err := jwtService.Sign(jwt.Claims{
				RegisteredClaims: gojwt.RegisteredClaims{
					Subject:   userID,
					ExpiresAt: gojwt.NewNumericDate(expires),
				},
				UserID: userID,
				Email:  email,
			})
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"access_token": token,
					"token_type":   "Bearer",
					"expires_in":   expMins * 60,
					"user_id":      userID,
					"email":        email,
				})
			}

			fmt.Printf("User ID:  %s\n", userID)
			fmt.Printf("Email:    %s\n", email)
			fmt.Printf("Expires:  %s\n", expires.Format(time.RFC3339))
			fmt.Println()
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "User record ID, e.g. user:abc123")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().IntVar(&expMins, "exp", 60, "Expiration in minutes")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
