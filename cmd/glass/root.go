package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Surya-sourav/glass/config"
	"github.com/Surya-sourav/glass/factory"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/logger"
	"github.com/Surya-sourav/glass/observability"
	"github.com/Surya-sourav/glass/validation"
)

// app is the state shared by subcommands once configuration is loaded.
type app struct {
	cfg           *config.Config
	dispatcher    *factory.Dispatcher
	llmMiddleware llm.Middleware
	shutdown      observability.ShutdownFunc

	configFile string
	envFile    string
	runtime    string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "glass",
		Short: "Speech-to-text and LLM provider registry",
		Long: `glass resolves short provider ids (openai, gemini, anthropic, deepgram,
ollama, whisper) to backend clients.

Credentials come from config.yml, a .env file or variables such as
OPENAI_API_KEY and DEEPGRAM_API_KEY.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to config.yml (default: search standard locations)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Path to .env file (default: search standard locations)")
	root.PersistentFlags().StringVar(&a.runtime, "runtime", "", "Execution context: main or renderer (overrides config)")

	root.AddCommand(
		newProvidersCmd(a),
		newCompleteCmd(a),
		newTranscribeCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, initialises logging and telemetry, and builds
// the dispatcher for the selected execution context.
func (a *app) setup(cmd *cobra.Command) error {
	if err := validation.New().OneOf("runtime", a.runtime, []string{config.RuntimeMain, config.RuntimeRenderer}).Err(); err != nil {
		return err
	}

	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if a.runtime != "" {
		cfg.Runtime = a.runtime
	}
	a.cfg = cfg

	logger.Init(cfg.Logging)

	shutdown, err := observability.Init(cmd.Context(), cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	a.shutdown = shutdown

	middlewares := []llm.Middleware{llm.WithLogging(logger.Get(logger.ComponentLLM))}
	if cfg.Tracing.Enabled {
		metrics, err := observability.NewMetrics(observability.Meter())
		if err != nil {
			return err
		}
		middlewares = append(middlewares, llm.WithTracing(cfg.Name), llm.WithMetrics(metrics))
	}
	a.llmMiddleware = llm.Chain(middlewares...)

	ec, _ := factory.ParseExecContext(cfg.Runtime)
	a.dispatcher = factory.NewDispatcher(factory.DefaultRegistry(),
		factory.WithExecContext(ec),
		factory.WithLogger(logger.Get(logger.ComponentFactory)),
	)
	return nil
}

// providerOptions returns configured options for id with non-empty overrides
// applied on top.
func (a *app) providerOptions(id string, overrides map[string]string) map[string]any {
	opts := a.cfg.ProviderOptions(id)
	for k, v := range overrides {
		if v != "" {
			opts[k] = v
		}
	}
	return opts
}
