package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/comixed/comixed-client/internal/feature/blockedhash"
	"github.com/comixed/comixed-client/internal/feature/comicbook"
	"github.com/comixed/comixed-client/internal/feature/comicfile"
	"github.com/comixed/comixed-client/internal/feature/readinglist"
	"github.com/comixed/comixed-client/internal/feature/selection"
	"github.com/comixed/comixed-client/internal/feature/user"
	"github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/store"
	"github.com/comixed/comixed-client/plugins/importwatcher"
	"github.com/comixed/comixed-client/plugins/metrics"
)

// watchHandler logs lifecycle transitions and effect outcomes.
type watchHandler struct {
	comixed.BaseEventHandler
	cli *cli
}

func (h watchHandler) OnStateChange(e comixed.StateChangeEvent) {
	h.cli.log.Info().Str("component", e.Component).Str("from", e.Previous.String()).
		Str("to", e.Current.String()).Str("reason", e.Reason).Msg("state change")
}

func (h watchHandler) OnEffect(e comixed.EffectEvent) {
	h.cli.log.Debug().Str("effect", e.Effect).Str("action", e.Action).
		Str("outcome", e.Outcome.String()).Dur("elapsed", e.Elapsed).Msg("effect")
}

func (c *cli) watchCmd() *cobra.Command {
	var (
		batch    int
		maxFiles int
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the state layer running and follow the server",
		Long: `Loads the library into the state layer and keeps it current until
interrupted. With --live, server pushes update the slices. With --import-dir,
changes on disk reload the comic file listing. With --metrics-addr, action
and effect metrics are served for prometheus.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []comixed.Option{comixed.WithEventHandler(watchHandler{cli: c})}
			if c.cfg.ImportDir != "" {
				wc := importwatcher.DefaultConfig()
				wc.Directory = c.cfg.ImportDir
				wc.MaxFiles = maxFiles
				wc.DebounceDelay = debounce
				wc.InitialScan = true
				opts = append(opts, importwatcher.WithImportWatcher(wc))
			}
			if c.cfg.MetricsAddr != "" {
				opts = append(opts, metrics.WithMetrics(metrics.Config{Addr: c.cfg.MetricsAddr}))
			}

			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				for _, intent := range []store.Action{
					user.LoadCurrentUser{},
					selection.LoadComicBookSelections{},
					blockedhash.LoadBlockedHashList{},
					readinglist.LoadReadingLists{},
					comicbook.LoadComicBooks{MaxRecords: batch},
				} {
					if err := client.Dispatch(ctx, intent); err != nil {
						return err
					}
				}
				c.log.Info().Bool("live", c.cfg.Live).Str("import_dir", c.cfg.ImportDir).
					Str("metrics_addr", c.cfg.MetricsAddr).Msg("watching, press ctrl-c to stop")

				ticker := time.NewTicker(time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						c.log.Info().Msg("received signal, stopping...")
						return nil
					case <-ticker.C:
						if client.Status() == comixed.StateCrashed {
							c.log.Error().Msg("client crashed")
							return nil
						}
						st := client.State()
						c.log.Info().
							Int("comics", comicbook.SelectCount.Get(st)).
							Int("selected", selection.SelectCount.Get(st)).
							Int("import_files", len(comicfile.SelectFiles.Get(st))).
							Msg("status")
					}
				}
			}, opts...)
		},
	}
	cmd.Flags().IntVar(&batch, "batch", 100, "comics requested per batch")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "maximum import files listed per reload (0 is no cap)")
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "quiet period before reloading the import directory")
	return cmd
}
