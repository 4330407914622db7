package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/validation"
)

func newCompleteCmd(a *app) *cobra.Command {
	var (
		providerID  string
		model       string
		system      string
		stream      bool
		temperature float64
		maxTokens   int
	)
	cmd := &cobra.Command{
		Use:   "complete <prompt...>",
		Short: "Send a prompt to an LLM provider",
		Example: `  glass complete -p anthropic "Summarise the meeting"
  glass complete -p openai-glass -m gpt-4.1-glass --stream "Hello"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			err := validation.New().
				ProviderID("provider", providerID).
				Required("prompt", prompt).
				Custom(temperature >= 0 && temperature <= 2, "temperature", "must be between 0 and 2").
				Custom(maxTokens >= 0, "max-tokens", "must not be negative").
				Err()
			if err != nil {
				return err
			}

			req := llm.CompletionRequest{
				Messages:     []llm.Message{llm.UserMessage(prompt)},
				SystemPrompt: system,
				Temperature:  temperature,
				MaxTokens:    maxTokens,
			}
			opts := a.providerOptions(providerID, map[string]string{"model": model})
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if stream {
				client, err := a.dispatcher.CreateStreamingLLM(providerID, opts)
				if err != nil {
					return err
				}
				defer provider.CloseIfCloseable(ctx, client)
				chunks, err := client.Stream(ctx, req)
				if err != nil {
					return fmt.Errorf("%s stream: %w", providerID, err)
				}
				for chunk := range chunks {
					if chunk.Err != nil {
						return fmt.Errorf("%s stream: %w", providerID, chunk.Err)
					}
					fmt.Fprint(out, chunk.Content)
				}
				fmt.Fprintln(out)
				return nil
			}

			client, err := a.dispatcher.CreateLLM(providerID, opts)
			if err != nil {
				return err
			}
			defer provider.CloseIfCloseable(ctx, client)
			resp, err := a.llmMiddleware(client).Complete(ctx, req)
			if err != nil {
				return fmt.Errorf("%s complete: %w", providerID, err)
			}
			fmt.Fprintln(out, resp.Content)
			return nil
		},
	}
	cmd.Flags().StringVarP(&providerID, "provider", "p", "openai", "Provider id")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model id (default: configured or backend default)")
	cmd.Flags().StringVarP(&system, "system", "s", "", "System prompt")
	cmd.Flags().BoolVar(&stream, "stream", false, "Stream the response")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "Sampling temperature (0-2)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Maximum response tokens (0 = backend default)")
	return cmd
}
