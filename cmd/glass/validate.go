package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Surya-sourav/glass/logger"
	"github.com/Surya-sourav/glass/util"
	"github.com/Surya-sourav/glass/validation"
)

func newValidateCmd(a *app) *cobra.Command {
	var apiKey string
	cmd := &cobra.Command{
		Use:   "validate <provider>",
		Short: "Check an API key against a provider",
		Long: `Check an API key against a provider. Without --api-key the configured
key is used. Local providers check that their server is reachable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := validation.New().ProviderID("provider", id).Err(); err != nil {
				return err
			}
			key := apiKey
			if key == "" {
				key, _ = a.cfg.ProviderOptions(id)["api_key"].(string)
			}
			logger.Get(logger.ComponentCLI).Debug("Validating API key", map[string]any{
				logger.FieldProvider: id,
				"api_key":            util.MaskSecret(key, 4),
			})
			if err := a.dispatcher.ValidateAPIKey(cmd.Context(), id, key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key to check")
	return cmd
}
