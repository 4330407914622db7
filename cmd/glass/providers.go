package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Surya-sourav/glass/factory"
)

func newProvidersCmd(a *app) *cobra.Command {
	var (
		available bool
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List registered providers and their models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			d := a.dispatcher

			if available {
				av := d.AvailableProviders()
				if asJSON {
					return writeJSON(out, av)
				}
				fmt.Fprintf(out, "STT: %s\n", strings.Join(av.STT, ", "))
				fmt.Fprintf(out, "LLM: %s\n", strings.Join(av.LLM, ", "))
				return nil
			}

			entries := d.Registry().Entries()
			if asJSON {
				return writeJSON(out, entries)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCLASS\tLLM MODELS\tSTT MODELS")
			for _, e := range entries {
				class := "-"
				if c, ok := d.ProviderClass(e.ID); ok {
					class = c.Name
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Provider.Name, class,
					modelIDs(e.Provider.LLMModels), modelIDs(e.Provider.STTModels))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "Show only provider ids grouped by capability")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func modelIDs(models []factory.ModelOption) string {
	if len(models) == 0 {
		return "-"
	}
	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	return strings.Join(ids, ",")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
