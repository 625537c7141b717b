package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/structargs/structargs"
	"github.com/structargs/structargs/example/opts"
	"github.com/structargs/structargs/validator"
)

//
// This file contains the example root command. All of its flags are derived
// from the opts.ServerConfig declaration, parsed values are validated and
// materialized back into a config instance before the command runs.
//

func main() {
	cmd := &cobra.Command{
		Use:          "example-server",
		Short:        "A server whose command-line surface is derived from a config struct",
		SilenceUsage: true,
	}

	// Register all derived flags on the command, including the nested
	// tls-cert/tls-key arguments.
	rec, raw, err := structargs.Bind(cmd, opts.DefaultServerConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	valid := validator.New()

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		vals, err := raw.Values()
		if err != nil {
			return err
		}

		instances, err := rec.BuildAll(vals, 1)
		if err != nil {
			return err
		}
		if err := valid.All(instances); err != nil {
			return err
		}

		cfg := instances[0].(*opts.ServerConfig)
		logger := newLogger(cfg.Level, cfg.Debug, os.Stderr)

		logger.Info("serving",
			"host", cfg.Host,
			"port", cfg.Port,
			"tags", cfg.Tags,
		)
		logger.Debug("tls material",
			"cert", cfg.TLS.Cert,
			"key", cfg.TLS.Key,
		)

		return nil
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger configures a slog.Logger from the parsed config. It does not set
// the global logger, allowing for isolated logger instances.
func newLogger(level opts.Level, debug bool, outW io.Writer) *slog.Logger {
	var slevel slog.Level
	switch {
	case debug:
		slevel = slog.LevelDebug
	case level == opts.Warn:
		slevel = slog.LevelWarn
	case level == opts.Error:
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(outW, &slog.HandlerOptions{Level: slevel}))
}
