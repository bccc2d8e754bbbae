package importwatcher

import "github.com/comixed/comixed-client/pkg/comixed"

// WithImportWatcher returns a client Option that watches an import
// directory and reloads its comic file listing when it changes.
//
// Usage:
//
//	client, err := comixed.New(cfg,
//	    importwatcher.WithImportWatcher(importwatcher.Config{
//	        Directory:     "/comics/incoming",
//	        DebounceDelay: 500 * time.Millisecond,
//	    }),
//	)
func WithImportWatcher(cfg Config) comixed.Option {
	return comixed.WithPlugin(New(cfg))
}
