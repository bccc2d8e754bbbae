package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/internal/feature/blockedhash"
	"github.com/comixed/comixed-client/internal/feature/comicbook"
	"github.com/comixed/comixed-client/internal/feature/comicfile"
	"github.com/comixed/comixed-client/internal/feature/readinglist"
	"github.com/comixed/comixed-client/internal/feature/scraping"
	"github.com/comixed/comixed-client/internal/feature/selection"
	"github.com/comixed/comixed-client/internal/feature/user"
	"github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// errCancelled is returned when the user declines a confirmation.
var errCancelled = errors.New("cancelled")

// failure extracts the error carried by a failure action, or nil.
func failure(a store.Action) error {
	switch f := a.(type) {
	case selection.LoadComicBookSelectionsFailed:
		return f.Err
	case selection.UpdateComicBookSelectionsFailed:
		return f.Err
	case comicbook.LoadComicBooksFailed:
		return f.Err
	case blockedhash.LoadBlockedHashListFailed:
		return f.Err
	case blockedhash.SaveBlockedHashFailed:
		return f.Err
	case blockedhash.DeleteBlockedHashesFailed:
		return f.Err
	case readinglist.LoadReadingListsFailed:
		return f.Err
	case readinglist.DeleteReadingListsFailed:
		return f.Err
	case user.LoadCurrentUserFailed:
		return f.Err
	case scraping.LoadScrapingVolumesFailed:
		return f.Err
	case scraping.ScrapeComicFailed:
		return f.Err
	case comicfile.LoadComicFilesFailed:
		return f.Err
	case comicfile.ImportComicFilesFailed:
		return f.Err
	case effect.Failed:
		return f.Err
	}
	return nil
}

// await dispatches intent and returns the envelope of its result, or the
// error a failure result carries.
func await(ctx context.Context, client *comixed.Client, intent store.Action, done ...store.Action) (store.Envelope, error) {
	env, err := client.Await(ctx, intent, store.Types(append(done, effect.Failed{})...)...)
	if err != nil {
		return env, err
	}
	return env, failure(env.Action)
}

// confirmThenAwait runs ask, which dispatches only if the user confirms,
// and waits for one of done.
func confirmThenAwait(ctx context.Context, client *comixed.Client, ask func() (bool, error), done ...store.Action) (store.Envelope, error) {
	sub := client.Store().Subscribe(0)
	defer sub.Unsubscribe()

	ok, err := ask()
	if err != nil {
		return store.Envelope{}, err
	}
	if !ok {
		return store.Envelope{}, errCancelled
	}
	env, err := sub.Next(ctx, store.OfType(store.Types(append(done, effect.Failed{})...)...))
	if err != nil {
		return env, err
	}
	return env, failure(env.Action)
}

func (c *cli) selectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selections",
		Short: "Show or change the selected comics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client, selection.LoadComicBookSelections{},
					selection.ComicBookSelectionsLoaded{}, selection.LoadComicBookSelectionsFailed{})
				if err != nil {
					return err
				}
				printSelections(cmd, env.State)
				return nil
			})
		},
	}

	update := func(use, short string, intent func(id int64) store.Action) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <comic-id>...",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
					var env store.Envelope
					for _, id := range ids {
						env, err = await(ctx, client, intent(id),
							selection.ComicBookSelectionsLoaded{}, selection.UpdateComicBookSelectionsFailed{})
						if err != nil {
							return err
						}
					}
					printSelections(cmd, env.State)
					return nil
				})
			},
		}
	}
	cmd.AddCommand(
		update("add", "Select comics", func(id int64) store.Action { return selection.AddSingleSelection{ComicBookID: id} }),
		update("remove", "Deselect comics", func(id int64) store.Action { return selection.RemoveSingleSelection{ComicBookID: id} }),
		&cobra.Command{
			Use:   "clear",
			Short: "Deselect every comic",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
					env, err := await(ctx, client, selection.ClearSelections{},
						selection.ComicBookSelectionsLoaded{}, selection.UpdateComicBookSelectionsFailed{})
					if err != nil {
						return err
					}
					printSelections(cmd, env.State)
					return nil
				})
			},
		},
	)
	return cmd
}

func printSelections(cmd *cobra.Command, st store.State) {
	ids := selection.SelectIDs.Get(st)
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("no comics selected"))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d selected: %s\n", len(ids), joinIDs(ids))
}

func (c *cli) comicsCmd() *cobra.Command {
	var (
		batch  int
		resume bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Load the comic list batch by batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				var lastID int64
				if resume {
					cur, err := client.Cursor(ctx)
					if err != nil {
						return err
					}
					lastID = cur.ComicBooksLastID
				}

				sub := client.Store().Subscribe(0)
				defer sub.Unsubscribe()

				if err := client.Dispatch(ctx, comicbook.LoadComicBooks{MaxRecords: batch, LastID: lastID}); err != nil {
					return err
				}
				match := store.OfType(comicbook.ComicBooksReceived{}.Type(), comicbook.LoadComicBooksFailed{}.Type())
				for {
					env, err := sub.Next(ctx, match)
					if err != nil {
						return err
					}
					if err := failure(env.Action); err != nil {
						return err
					}
					got := env.Action.(comicbook.ComicBooksReceived)
					c.log.Debug().Int("count", len(got.ComicBooks)).Int64("last_id", got.LastID).Msg("batch received")
					if got.LastPayload || len(got.ComicBooks) == 0 {
						printComics(cmd, comicbook.SelectComicBooks.Get(env.State))
						return nil
					}
				}
			})
		},
	}
	list.Flags().IntVar(&batch, "batch", 100, "comics requested per batch")
	list.Flags().BoolVar(&resume, "resume", false, "only load comics after the saved cursor")

	cmd := &cobra.Command{Use: "comics", Short: "Browse the comic library"}
	cmd.AddCommand(list)
	return cmd
}

func printComics(cmd *cobra.Command, comics []domain.ComicBook) {
	rows := make([][]string, 0, len(comics))
	for _, cb := range comics {
		rows = append(rows, []string{itoa(cb.ID), cb.Publisher, cb.Series, cb.Volume, cb.IssueNumber, cb.Filename})
	}
	renderTable(cmd.OutOrStdout(), []string{"ID", "Publisher", "Series", "Volume", "Issue", "File"}, rows)
}

func (c *cli) blockedHashesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "blocked-hashes", Aliases: []string{"blocked"}, Short: "Manage blocked pages"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List blocked page hashes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client, blockedhash.LoadBlockedHashList{},
					blockedhash.BlockedHashListLoaded{}, blockedhash.LoadBlockedHashListFailed{})
				if err != nil {
					return err
				}
				printBlockedHashes(cmd, blockedhash.SelectEntries.Get(env.State))
				return nil
			})
		},
	}

	var entry domain.BlockedHash
	save := &cobra.Command{
		Use:   "save <hash>",
		Short: "Block a page hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry.Hash = args[0]
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				_, err := confirmThenAwait(ctx, client, func() (bool, error) {
					return blockedhash.ConfirmSave(ctx, client.Confirmer(), client.Translator(), client, entry)
				}, blockedhash.BlockedHashSaved{}, blockedhash.SaveBlockedHashFailed{})
				return err
			})
		},
	}
	save.Flags().StringVar(&entry.Label, "label", "", "label for the blocked page")
	save.Flags().StringVar(&entry.Comment, "comment", "", "comment for the blocked page")

	del := &cobra.Command{
		Use:   "delete <hash>...",
		Short: "Unblock page hashes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				_, err := confirmThenAwait(ctx, client, func() (bool, error) {
					return blockedhash.ConfirmDelete(ctx, client.Confirmer(), client.Translator(), client, args)
				}, blockedhash.BlockedHashesDeleted{}, blockedhash.DeleteBlockedHashesFailed{})
				return err
			})
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}

func printBlockedHashes(cmd *cobra.Command, entries []domain.BlockedHash) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Hash, e.Label, e.Comment})
	}
	renderTable(cmd.OutOrStdout(), []string{"Hash", "Label", "Comment"}, rows)
}

func (c *cli) readingListsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "reading-lists", Aliases: []string{"lists"}, Short: "Manage reading lists"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List reading lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client, readinglist.LoadReadingLists{},
					readinglist.ReadingListsLoaded{}, readinglist.LoadReadingListsFailed{})
				if err != nil {
					return err
				}
				lists := readinglist.SelectLists.Get(env.State)
				rows := make([][]string, 0, len(lists))
				for _, l := range lists {
					rows = append(rows, []string{itoa(l.ID), l.Name, l.Owner, strconv.Itoa(len(l.EntryIDs))})
				}
				renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Owner", "Comics"}, rows)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete reading lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				_, err := confirmThenAwait(ctx, client, func() (bool, error) {
					return readinglist.ConfirmDelete(ctx, client.Confirmer(), client.Translator(), client, ids)
				}, readinglist.ReadingListsDeleted{}, readinglist.DeleteReadingListsFailed{})
				return err
			})
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client, user.LoadCurrentUser{},
					user.CurrentUserLoaded{}, user.LoadCurrentUserFailed{})
				if err != nil {
					return err
				}
				u := env.Action.(user.CurrentUserLoaded).User
				roles := make([]string, len(u.Roles))
				for i, r := range u.Roles {
					roles[i] = r.Name
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, headerStyle.Render(u.Email))
				fmt.Fprintf(out, "roles: %s\n", strings.Join(roles, ", "))
				rows := make([][]string, 0, len(u.Preferences))
				for _, p := range u.Preferences {
					rows = append(rows, []string{p.Name, p.Value})
				}
				renderTable(out, []string{"Preference", "Value"}, rows)
				return nil
			})
		},
	}
}

func (c *cli) scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "scrape", Short: "Look up and apply comic metadata"}

	var (
		source    string
		maxVols   int
		skipCache bool
	)
	volumes := &cobra.Command{
		Use:   "volumes <series>",
		Short: "Search a metadata source for volumes of a series",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series := strings.Join(args, " ")
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client,
					scraping.LoadScrapingVolumes{Source: source, Series: series, MaxRecords: maxVols, SkipCache: skipCache},
					scraping.ScrapingVolumesLoaded{}, scraping.LoadScrapingVolumesFailed{})
				if err != nil {
					return err
				}
				vols := env.Action.(scraping.ScrapingVolumesLoaded).Volumes
				rows := make([][]string, 0, len(vols))
				for _, v := range vols {
					rows = append(rows, []string{v.ID, v.Name, v.Publisher, v.StartYear, strconv.Itoa(v.IssueCount)})
				}
				renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Publisher", "Year", "Issues"}, rows)
				return nil
			})
		},
	}
	volumes.Flags().IntVar(&maxVols, "max", 25, "maximum volumes to return")

	var (
		issueID string
		comicID int64
	)
	comic := &cobra.Command{
		Use:   "comic",
		Short: "Apply an issue's metadata to a comic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client,
					scraping.ScrapeComic{Source: source, IssueID: issueID, ComicBookID: comicID, SkipCache: skipCache},
					scraping.ComicScraped{}, scraping.ScrapeComicFailed{})
				if err != nil {
					return err
				}
				printComics(cmd, []domain.ComicBook{env.Action.(scraping.ComicScraped).ComicBook})
				return nil
			})
		},
	}
	comic.Flags().StringVar(&issueID, "issue", "", "issue id at the metadata source")
	comic.Flags().Int64Var(&comicID, "comic", 0, "comic id to update")
	_ = comic.MarkFlagRequired("issue")
	_ = comic.MarkFlagRequired("comic")

	cmd.PersistentFlags().StringVar(&source, "source", "comicvine", "metadata source")
	cmd.PersistentFlags().BoolVar(&skipCache, "skip-cache", false, "bypass the server's metadata cache")
	cmd.AddCommand(volumes, comic)
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "import", Short: "List and import comic files"}

	var maxFiles int
	scan := &cobra.Command{
		Use:   "scan [directory]",
		Short: "List the comic files the server sees in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.importDir(args)
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client, comicfile.LoadComicFiles{Directory: dir, MaxFiles: maxFiles},
					comicfile.ComicFilesLoaded{}, comicfile.LoadComicFilesFailed{})
				if err != nil {
					return err
				}
				printComicFiles(cmd, env.Action.(comicfile.ComicFilesLoaded).Groups)
				return nil
			})
		},
	}

	var (
		skipMetadata bool
		skipBlocked  bool
	)
	run := &cobra.Command{
		Use:   "run [directory]",
		Short: "Import every comic file in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.importDir(args)
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, client *comixed.Client) error {
				env, err := await(ctx, client, comicfile.LoadComicFiles{Directory: dir, MaxFiles: maxFiles},
					comicfile.ComicFilesLoaded{}, comicfile.LoadComicFilesFailed{})
				if err != nil {
					return err
				}
				var names []string
				for _, g := range env.Action.(comicfile.ComicFilesLoaded).Groups {
					for _, f := range g.Files {
						names = append(names, f.Filename)
					}
				}
				if len(names) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("nothing to import"))
					return nil
				}
				_, err = await(ctx, client,
					comicfile.ImportComicFiles{Filenames: names, SkipMetadata: skipMetadata, SkipBlockingPages: skipBlocked},
					comicfile.ComicFilesImported{}, comicfile.ImportComicFilesFailed{})
				return err
			})
		},
	}
	run.Flags().BoolVar(&skipMetadata, "skip-metadata", false, "do not read metadata from the files")
	run.Flags().BoolVar(&skipBlocked, "skip-blocking-pages", false, "do not remove blocked pages")

	cmd.PersistentFlags().IntVar(&maxFiles, "max-files", 0, "maximum files to list (0 is no cap)")
	cmd.AddCommand(scan, run)
	return cmd
}

func (c *cli) importDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if c.cfg.ImportDir == "" {
		return "", errors.New("no directory given and no import directory configured")
	}
	return c.cfg.ImportDir, nil
}

func printComicFiles(cmd *cobra.Command, groups []domain.ComicFileGroup) {
	var rows [][]string
	for _, g := range groups {
		for _, f := range g.Files {
			rows = append(rows, []string{g.Directory, f.BaseFilename, strconv.FormatInt(f.Size, 10)})
		}
	}
	renderTable(cmd.OutOrStdout(), []string{"Directory", "File", "Size"}, rows)
}
