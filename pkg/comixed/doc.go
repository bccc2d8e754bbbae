// Package comixed provides an embeddable client for a ComiXed comic library
// server.
//
// A Client keeps feature state (comic list, selections, blocked pages,
// reading lists, the current user, scraping and import workflows) in a
// single store. Intent actions dispatched to the store are picked up by
// effects that call the server's REST API and dispatch the result. Failures
// never escape an effect: they become failure actions plus a translated
// alert.
//
// # Basic Usage
//
//	cfg := comixed.DefaultConfig()
//	cfg.ServerURL = "https://comics.example.com"
//	cfg.AuthToken = token
//
//	client, err := comixed.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Stop()
//
//	env, err := client.Await(ctx, selection.LoadComicBookSelections{},
//	    selection.ComicBookSelectionsLoaded{}.Type(),
//	    selection.LoadComicBookSelectionsFailed{}.Type())
//
// # Live Updates
//
// With Config.Live set the client connects to the server's WebSocket
// endpoint and turns pushed messages into actions, so slices stay current
// without polling.
//
// # Event Handling
//
// Implement [EventHandler] and pass it via [WithEventHandler] to be told
// about lifecycle transitions and effect outcomes. Events are called
// synchronously and must return quickly.
//
// # Plugins
//
//	import "github.com/comixed/comixed-client/plugins/importwatcher"
//	import "github.com/comixed/comixed-client/plugins/metrics"
//
//	client, err := comixed.New(cfg,
//	    importwatcher.WithImportWatcher(importwatcher.Config{Directory: dir}),
//	    metrics.WithMetrics(metrics.Config{Addr: ":9464"}),
//	)
//
// # Lifecycle States
//
// A Client can be in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Every Start builds a
// fresh store; state does not carry over between runs.
package comixed
