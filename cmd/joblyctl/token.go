package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/jacksonlee411/jobly/internal/config"
	"github.com/jacksonlee411/jobly/internal/identity"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/spf13/cobra"
)

func newTokenCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var (
		subject string
		admin   bool
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an identity token signed with SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if subject == "" {
				return errors.New("--sub is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = cfg.TokenTTL
			}
			tok, err := identity.NewTokens(cfg.SecretKey, ttl).Issue(authz.Identity{Subject: subject, IsAdmin: admin})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "username the token asserts")
	cmd.Flags().BoolVar(&admin, "admin", false, "assert the administrator role")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default TOKEN_TTL)")
	return cmd
}
