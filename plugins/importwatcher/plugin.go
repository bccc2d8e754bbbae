// Package importwatcher reloads the comic file listing of an import
// directory whenever files under it change on disk.
package importwatcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/comixed/comixed-client/internal/feature/comicfile"
	"github.com/comixed/comixed-client/pkg/comixed"
	"github.com/comixed/comixed-client/pkg/lifecycle"
	"github.com/comixed/comixed-client/pkg/log"
	"github.com/comixed/comixed-client/pkg/store"
)

// DefaultExtensions are the archive types the server can import.
var DefaultExtensions = []string{".cbz", ".cbr", ".cb7", ".cbt", ".pdf"}

// Config holds configuration options for the import watcher plugin.
type Config struct {
	// Directory is the import directory. Empty disables the plugin.
	Directory string

	// MaxFiles caps the listing requested on each reload.
	// Default: 0 (no cap)
	MaxFiles int

	// DebounceDelay is how long the directory must stay quiet before a
	// reload is dispatched.
	// Default: 250 milliseconds
	DebounceDelay time.Duration

	// RetryInterval paces attempts to watch a directory that does not
	// exist yet.
	// Default: 5 seconds
	RetryInterval time.Duration

	// Extensions restricts which file changes trigger a reload.
	// Default: DefaultExtensions
	Extensions []string

	// InitialScan dispatches a reload as soon as the watch is in place.
	InitialScan bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 250 * time.Millisecond,
		RetryInterval: 5 * time.Second,
		Extensions:    DefaultExtensions,
		InitialScan:   true,
	}
}

// Plugin implements import directory watching.
type Plugin struct {
	cfg        Config
	extensions map[string]bool

	mu       sync.Mutex
	logger   log.Logger
	store    store.Dispatcher
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

var _ comixed.Plugin = (*Plugin)(nil)

// New creates an import watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	d := DefaultConfig()
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = d.DebounceDelay
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = d.RetryInterval
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = d.Extensions
	}
	ext := make(map[string]bool, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		ext[strings.ToLower(e)] = true
	}
	return &Plugin{cfg: cfg, extensions: ext, logger: log.NewNoopLogger()}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "importwatcher"
}

// Initialize starts watching the import directory.
func (p *Plugin) Initialize(ctx context.Context, cfg comixed.PluginConfig) error {
	p.mu.Lock()
	p.logger = log.OrNoop(cfg.Logger).With(log.String("plugin", p.Name()))
	if cfg.Store != nil {
		p.store = cfg.Store
	}
	p.mu.Unlock()

	if p.cfg.Directory == "" || p.store == nil {
		p.logger.Warn("import watcher disabled: no directory or store")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	p.logger.Info("import watcher initialized", log.String("directory", p.cfg.Directory))
	return nil
}

// Shutdown stops the watcher and drops a pending reload.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("import watcher: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	retry := lifecycle.NewBackoff(p.cfg.RetryInterval, 8*p.cfg.RetryInterval)
	for {
		err := p.addTree(watcher, p.cfg.Directory)
		if err == nil {
			break
		}
		p.logger.Warn("import watcher: directory not watchable yet",
			log.String("directory", p.cfg.Directory),
			log.Err(err),
			log.Duration("retry_in", retry.Current()))
		if retry.Wait(ctx) != nil {
			return
		}
	}

	if p.cfg.InitialScan {
		p.reload(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			p.handle(ctx, watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("import watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) handle(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := p.addTree(watcher, event.Name); err != nil {
				p.logger.Warn("import watcher: cannot watch new directory",
					log.String("directory", event.Name), log.Err(err))
			}
			p.debounceReload(ctx)
			return
		}
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if !p.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}
	p.debounceReload(ctx)
}

// addTree watches root and every directory below it; fsnotify watches are
// not recursive.
func (p *Plugin) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.cfg.DebounceDelay, func() {
		p.reload(ctx)
	})
}

func (p *Plugin) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	err := p.store.Dispatch(ctx, comicfile.ComicFilesDirectoryChanged{
		Directory: p.cfg.Directory,
		MaxFiles:  p.cfg.MaxFiles,
	})
	if err != nil {
		p.logger.Warn("import watcher: reload not dispatched", log.Err(err))
		return
	}
	p.logger.Debug("import directory changed", log.String("directory", p.cfg.Directory))
}
