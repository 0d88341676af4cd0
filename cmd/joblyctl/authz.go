package main

import (
	"errors"
	"fmt"

	"github.com/jacksonlee411/jobly/internal/config"
	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/spf13/cobra"
)

func newAuthzCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authz",
		Short: "Inspect the route policy",
	}

	var role, object, action string
	check := &cobra.Command{
		Use:   "check",
		Short: "Evaluate whether a role may perform an action on an object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if object == "" || action == "" {
				return errors.New("--object and --action are required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := policyAuthorizer(cfg)
			if err != nil {
				return err
			}
			subject := authz.SubjectFromRoleSlug(role)
			allowed, _, err := a.Authorize(subject, object, action)
			if err != nil {
				return err
			}
			verdict := "deny"
			if allowed {
				verdict = "allow"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %s\n", subject, object, action, verdict)
			return err
		},
	}
	check.Flags().StringVar(&role, "role", authz.RoleAnonymous, "role slug: anonymous, user or admin")
	check.Flags().StringVar(&object, "object", "", "policy object, e.g. users")
	check.Flags().StringVar(&action, "action", "", "policy action, e.g. read")

	cmd.AddCommand(check)
	return cmd
}

// policyAuthorizer always enforces so the answer reflects the policy, whatever AUTHZ_MODE says.
func policyAuthorizer(cfg config.Config) (*authz.Authorizer, error) {
	if cfg.ModelPath == "" && cfg.PolicyPath == "" {
		return authz.NewDefaultAuthorizer(authz.ModeEnforce)
	}
	if cfg.ModelPath == "" || cfg.PolicyPath == "" {
		return nil, errors.New("AUTHZ_MODEL_PATH and AUTHZ_POLICY_PATH must be set together")
	}
	return authz.NewAuthorizer(cfg.ModelPath, cfg.PolicyPath, authz.ModeEnforce)
}
