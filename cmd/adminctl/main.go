// adminctl — консоль администратора в терминале: те же операции, что и
// в веб-консоли, поверх того же шлюза. Сессия по умолчанию хранится в файле,
// поэтому переживает отдельные запуски.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pribylovaa/events-admin-console/internal/config"
	"github.com/pribylovaa/events-admin-console/internal/console"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// cli — состояние одного запуска.
type cli struct {
	configPath string
	output     string
	logLevel   string

	out    io.Writer
	errOut io.Writer
	app    *console.Console
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "Events platform admin console (CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVarP(&c.output, "output", "o", outputJSON, "Output format (json, yaml)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.sessionCmd(),
		c.eventsCmd(),
		c.participantsCmd(),
		c.productsCmd(),
		c.postsCmd(),
		c.dashboardCmd(),
	)

	return cmd
}

func (c *cli) init() error {
	if c.output != outputJSON && c.output != outputYAML {
		return fmt.Errorf("unknown output format %q (want json or yaml)", c.output)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: parseLevel(c.logLevel)}))
	slog.SetDefault(log)

	// memory-хранилище бессмысленно между запусками CLI.
	opts := console.Options{}
	if cfg.TokenStore.Driver == "" || cfg.TokenStore.Driver == tokenstore.DriverMemory {
		opts.StoreDriver = tokenstore.DriverFile
	}

	c.app, err = console.New(*cfg, log, opts)
	return err
}

func (c *cli) print(v any) error {
	return render(c.out, c.output, v)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
