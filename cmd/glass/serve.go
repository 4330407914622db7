package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Surya-sourav/glass/api"
	"github.com/Surya-sourav/glass/logger"
	"github.com/Surya-sourav/glass/util"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr    string
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the provider API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			origins = append(origins, a.cfg.Server.AllowedOrigins...)
			srv := api.New(a.dispatcher,
				api.WithLogger(logger.Get(logger.ComponentAPI)),
				api.WithServiceName(a.cfg.Name),
				api.WithProviderOptions(a.cfg.ProviderOptions),
				api.WithLLMMiddleware(a.llmMiddleware),
				api.WithAllowedOrigins(origins...),
				api.WithMaxBodySize(util.ParseSize(a.cfg.Server.MaxBodySize, 25<<20)),
			)
			if err := srv.Start(addr); err != nil {
				return err
			}

			<-cmd.Context().Done()
			return srv.Stop(context.WithoutCancel(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	return cmd
}
