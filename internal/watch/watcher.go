package watch

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vango-dev/routegen/internal/config"
	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/logger"
)

// Change is one file system event.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are watched recursively. A file path watches its directory.
	Paths []string

	// Ignore holds base names, globs or slash-separated segment sequences.
	Ignore []string

	// Exclude holds directories whose contents never trigger a change,
	// such as the output directory.
	Exclude []string

	// Debounce is the quiet period before a batch is delivered.
	Debounce time.Duration

	Logger *zap.Logger
}

// Watcher delivers debounced batches of file changes. The callback runs on
// the watcher's goroutine, so a batch is never delivered while the
// previous one is still being handled.
type Watcher struct {
	config   WatcherConfig
	log      *zap.Logger
	onChange func([]Change)

	mu      sync.Mutex
	running bool
	fsw     *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a new file watcher.
func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = config.DefaultDebounce
	}
	if cfg.Ignore == nil {
		cfg.Ignore = config.DefaultIgnore()
	}
	exclude := make([]string, 0, len(cfg.Exclude))
	for _, dir := range cfg.Exclude {
		if abs, err := filepath.Abs(dir); err == nil {
			exclude = append(exclude, abs)
		}
	}
	cfg.Exclude = exclude

	return &Watcher{
		config: cfg,
		log:    logger.OrNop(cfg.Logger),
	}
}

// OnChange sets the callback for change batches.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start registers the watches and returns. Events are processed in the
// background until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New("E160").Wrap(err)
	}
	for _, p := range w.config.Paths {
		dir := p
		if info, err := os.Stat(p); err != nil {
			w.log.Debug("watch path missing", zap.String("path", p))
			continue
		} else if !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if err := w.addRecursive(fsw, dir); err != nil {
			fsw.Close()
			return errors.New("E160").WithLocation(dir, "").Wrap(err)
		}
	}

	w.fsw = fsw
	w.running = true
	w.done = make(chan struct{})
	go w.loop(ctx, fsw, w.done)
	return nil
}

// Stop stops the watcher and waits for an in-flight batch to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	fsw, done := w.fsw, w.done
	w.mu.Unlock()

	fsw.Close()
	<-done
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished between listing and visiting.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return fsw.Add(p)
	})
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(w.config.Debounce)
	timer.Stop()
	defer timer.Stop()

	var pending []Change
	seen := make(map[string]int)

	for {
		select {
		case <-ctx.Done():
			fsw.Close()
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || w.shouldIgnore(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, event.Name); err != nil {
						w.log.Warn("watch new directory failed", zap.String("path", event.Name), zap.Error(err))
					}
				}
			}

			if i, ok := seen[event.Name]; ok {
				pending[i].Op |= event.Op
			} else {
				seen[event.Name] = len(pending)
				pending = append(pending, Change{Path: event.Name, Op: event.Op})
			}
			timer.Reset(w.config.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			batch := pending
			pending = nil
			seen = make(map[string]int)

			w.mu.Lock()
			callback := w.onChange
			w.mu.Unlock()
			if callback != nil && len(batch) > 0 {
				callback(batch)
			}
		}
	}
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	for _, dir := range w.config.Exclude {
		if fullPath == dir || strings.HasPrefix(fullPath, dir+string(filepath.Separator)) {
			return true
		}
	}

	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if name == pattern {
			return true
		}

		hasPathSep := strings.Contains(pattern, "/") || strings.Contains(pattern, "\\")
		hasGlob := strings.ContainsAny(pattern, "*?[")

		if hasGlob {
			if hasPathSep {
				if matched, _ := path.Match(filepath.ToSlash(pattern), normalized); matched {
					return true
				}
			} else if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}

		if hasPathSep {
			if pathMatchesSegments(normalized, filepath.ToSlash(pattern)) {
				return true
			}
			continue
		}

		if pathHasSegment(normalized, pattern) {
			return true
		}
	}

	return false
}

func pathHasSegment(path, segment string) bool {
	for _, part := range splitPathSegments(path) {
		if part == segment {
			return true
		}
	}
	return false
}

func pathMatchesSegments(path, pattern string) bool {
	pathParts := splitPathSegments(path)
	patternParts := splitPathSegments(pattern)
	if len(patternParts) == 0 || len(patternParts) > len(pathParts) {
		return false
	}

	for i := 0; i <= len(pathParts)-len(patternParts); i++ {
		match := true
		for j := range patternParts {
			if pathParts[i+j] != patternParts[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func splitPathSegments(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	result := parts[:0]
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
