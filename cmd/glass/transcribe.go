package main

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
	"github.com/Surya-sourav/glass/validation"
)

func newTranscribeCmd(a *app) *cobra.Command {
	var (
		providerID string
		model      string
		language   string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:     "transcribe <audio-file>",
		Short:   "Transcribe an audio file with an STT provider",
		Example: `  glass transcribe -p deepgram --language en meeting.wav`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.New().ProviderID("provider", providerID).MaxLength("language", language, 16).Err(); err != nil {
				return err
			}

			client, err := a.dispatcher.CreateSTT(providerID, a.providerOptions(providerID, map[string]string{"model": model}))
			if err != nil {
				return err
			}
			defer provider.CloseIfCloseable(cmd.Context(), client)

			resp, err := client.Transcribe(cmd.Context(), transcription.TranscriptionRequest{
				AudioPath: args[0],
				MimeType:  mime.TypeByExtension(filepath.Ext(args[0])),
				Language:  language,
			})
			if err != nil {
				return fmt.Errorf("%s transcribe: %w", providerID, err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&providerID, "provider", "p", "openai", "Provider id")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model id (default: configured or backend default)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Expected language, e.g. en")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full response as JSON")
	return cmd
}
