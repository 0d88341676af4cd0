package main

import (
	"github.com/jacksonlee411/jobly/internal/config"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. getenv feeds the same configuration the server reads.
func newRootCmd(getenv func(string) string) *cobra.Command {
	var envFile string

	loadConfig := func() (config.Config, error) {
		if envFile != "" {
			if err := config.LoadDotEnv(envFile); err != nil {
				return config.Config{}, err
			}
		}
		return config.FromLookup(getenv)
	}

	root := &cobra.Command{
		Use:           "joblyctl",
		Short:         "Operator tooling for the jobly API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load variables from this .env file first")

	root.AddCommand(
		newTokenCmd(loadConfig),
		newHashPasswordCmd(loadConfig),
		newAuthzCmd(loadConfig),
		newDBCmd(loadConfig),
	)
	return root
}
