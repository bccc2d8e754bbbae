package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/comixed/comixed-client/internal/cliconfig"
	"github.com/comixed/comixed-client/pkg/alert"
	"github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/confirm"
	"github.com/comixed/comixed-client/pkg/log"
)

const helpDescription = `
Command line client for a ComiXed comic library server.

Every command runs the same state layer the web frontend uses: intent
actions go through effects that call the server's REST API, results land in
feature slices, and failures surface as translated alerts on stderr.

Configure via $HOME/.comixed/config.toml, COMIXED_* environment variables,
or flags. Flags win over the environment, which wins over the file.
`

var exampleUsage = strings.TrimSpace(`
  comixed --server https://comics.example.com --token <token> whoami
  comixed comics list --batch 100
  comixed reading-lists delete 12 14
  comixed watch --live --import-dir /comics/incoming --metrics-addr :9464
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli holds what every subcommand shares: the merged configuration and the
// console logger built from it.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig(), log: cliconfig.Logger("info")}

	root := &cobra.Command{
		Use:           "comixed",
		Short:         "Command line client for a ComiXed comic library server",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.comixed/config.toml)")
	flags.StringVar(&c.cfg.ServerURL, "server", c.cfg.ServerURL, "ComiXed server URL")
	flags.StringVar(&c.cfg.WebSocketURL, "ws-url", c.cfg.WebSocketURL, "WebSocket URL for live updates (derived from --server by default)")
	if err := flags.MarkHidden("ws-url"); err != nil {
		c.log.Info().Err(err).Msg("failed to hide ws-url flag")
	}
	flags.StringVar(&c.cfg.AuthToken, "token", c.cfg.AuthToken, "authentication token")
	flags.StringVar(&c.cfg.Locale, "locale", c.cfg.Locale, "locale for alerts and prompts")
	flags.DurationVar(&c.cfg.HTTPTimeout, "timeout", c.cfg.HTTPTimeout, "HTTP timeout")
	flags.DurationVar(&c.cfg.CallTimeout, "call-timeout", c.cfg.CallTimeout, "upper bound for one effect call (0 disables)")
	flags.IntVar(&c.cfg.MaxInFlight, "max-in-flight", c.cfg.MaxInFlight, "maximum concurrent effect calls (0 is unbounded)")
	flags.Float64Var(&c.cfg.RateLimit, "rate-limit", c.cfg.RateLimit, "maximum REST requests per second (0 is unlimited)")
	flags.IntVar(&c.cfg.RateBurst, "rate-burst", c.cfg.RateBurst, "REST request burst size")
	flags.StringVar(&c.cfg.StateDir, "state-dir", c.cfg.StateDir, "directory for the sync cursor (default: $HOME/.comixed)")
	flags.StringVar(&c.cfg.ImportDir, "import-dir", c.cfg.ImportDir, "import directory to watch")
	flags.StringVar(&c.cfg.MetricsAddr, "metrics-addr", c.cfg.MetricsAddr, "serve prometheus metrics on this address")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVarP(&c.cfg.AssumeYes, "yes", "y", c.cfg.AssumeYes, "confirm destructive operations without asking")
	flags.BoolVar(&c.cfg.Live, "live", c.cfg.Live, "subscribe to live updates over WebSocket")

	root.AddCommand(
		c.selectionsCmd(),
		c.comicsCmd(),
		c.blockedHashesCmd(),
		c.readingListsCmd(),
		c.whoamiCmd(),
		c.scrapeCmd(),
		c.importCmd(),
		c.watchCmd(),
	)

	if err := root.Execute(); err != nil {
		c.log.Error().Err(err).Msg("comixed")
		os.Exit(1)
	}
}

// loadConfig merges the config file, then COMIXED_* variables, under the
// flags the user set explicitly, and validates the result.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.log = cliconfig.Logger(c.cfg.LogLevel)
	c.log.Debug().Interface("config", c.cfg.Masked()).Msg("configuration")
	return nil
}

// run starts a client for the duration of fn. The context passed to fn is
// cancelled on SIGINT or SIGTERM.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, client *comixed.Client) error, extra ...comixed.Option) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewZerologAdapterWithLogger(c.log)

	var confirmer confirm.Confirmer = confirm.NewPrompt(cmd.InOrStdin(), cmd.ErrOrStderr())
	if c.cfg.AssumeYes {
		confirmer = confirm.Always()
	}

	opts := []comixed.Option{
		comixed.WithLogger(logger),
		comixed.WithAlerter(alert.NewService(nil, alertSink(cmd.ErrOrStderr()))),
		comixed.WithConfirmer(confirmer),
	}
	opts = append(opts, extra...)

	client, err := comixed.New(c.cfg.ClientConfig(), opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("start client: %w", err)
	}

	runErr := fn(ctx, client)

	if err := client.Stop(); err != nil {
		c.log.Warn().Err(err).Msg("stop client")
	}
	return runErr
}
