package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/luxury-estate-api/internal/config"
	"github.com/iliyamo/luxury-estate-api/internal/repository"
	"github.com/iliyamo/luxury-estate-api/internal/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "estatectl",
		Short: "Admin helpers for the real estate API",
		Long:  "Generate the admin password hash, mint admin tokens and inspect the project catalog.",
	}

	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(issueTokenCmd())
	rootCmd.AddCommand(projectsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func hashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash suitable for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 12, "bcrypt cost factor")
	return cmd
}

func issueTokenCmd() *cobra.Command {
	var ttl int
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint an admin access token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			if ttl <= 0 {
				ttl = cfg.AccessTTLMin
			}
			tok, err := utils.NewAccessToken(cfg.JWTSecret, "admin", utils.RoleAdmin, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			cmd.PrintErrf("expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
	cmd.Flags().IntVar(&ttl, "ttl", 0, "token lifetime in minutes (default ACCESS_TOKEN_TTL_MIN)")
	return cmd
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Print the built-in project catalog as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := repository.NewProjectRepo().ListAll(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	},
}
