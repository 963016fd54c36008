package server

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"hireup/internal/errors"
)

// CertWatcher watches certificate files and calls onChange once a burst of
// writes has settled.
type CertWatcher struct {
	mu sync.Mutex

	files       []string
	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stop   chan struct{}
	reload chan struct{}
	done   chan struct{}

	onChange func()
	logger   *errors.Logger
	running  bool
}

// NewCertWatcher creates a watcher for the given files.
func NewCertWatcher(files []string, debounceDelay time.Duration, onChange func(), logger *errors.Logger) *CertWatcher {
	if debounceDelay <= 0 {
		debounceDelay = time.Second
	}
	return &CertWatcher{
		files:         files,
		lastModTime:   make(map[string]time.Time),
		debounceDelay: debounceDelay,
		stop:          make(chan struct{}),
		reload:        make(chan struct{}, 1),
		done:          make(chan struct{}),
		onChange:      onChange,
		logger:        logger,
	}
}

// Start begins watching. Each file's directory is watched as well so that
// atomic replacements (write to temp, rename) are seen.
func (cw *CertWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("certificate watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw.fsWatcher = watcher

	cw.snapshotModTimes()
	dirs := make(map[string]struct{})
	for _, file := range cw.files {
		dirs[filepath.Dir(file)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	cw.running = true
	go cw.watchLoop()

	cw.logger.Info("Certificate file watcher started", "files", cw.files, "debounce_delay", cw.debounceDelay)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (cw *CertWatcher) Stop() error {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = false
	close(cw.stop)
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.mu.Unlock()

	err := cw.fsWatcher.Close()
	<-cw.done
	if err != nil {
		return fmt.Errorf("failed to close file watcher: %w", err)
	}
	cw.logger.Info("Certificate file watcher stopped")
	return nil
}

// IsRunning reports whether the event loop is active.
func (cw *CertWatcher) IsRunning() bool {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.running
}

func (cw *CertWatcher) watchLoop() {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.fsWatcher.Events:
			if !ok {
				return
			}
			if cw.isRelevant(event) {
				cw.scheduleReload()
			}

		case err, ok := <-cw.fsWatcher.Errors:
			if !ok {
				return
			}
			cw.logger.LogError(err, "File watcher error")

		case <-cw.reload:
			if cw.anyFileChanged() {
				cw.logger.Info("Certificate files changed, triggering reload")
				cw.onChange()
			}

		case <-cw.stop:
			return
		}
	}
}

func (cw *CertWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return slices.ContainsFunc(cw.files, func(file string) bool {
		return filepath.Clean(file) == name
	})
}

func (cw *CertWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, func() {
		select {
		case cw.reload <- struct{}{}:
		default:
		}
	})
}

func (cw *CertWatcher) snapshotModTimes() {
	for _, file := range cw.files {
		if stat, err := os.Stat(file); err == nil {
			cw.lastModTime[file] = stat.ModTime()
		}
	}
}

// anyFileChanged compares modification times against the last snapshot.
// Only the event loop goroutine calls it.
func (cw *CertWatcher) anyFileChanged() bool {
	changed := false
	for _, file := range cw.files {
		stat, err := os.Stat(file)
		if err != nil {
			continue
		}
		if last, ok := cw.lastModTime[file]; !ok || !stat.ModTime().Equal(last) {
			cw.lastModTime[file] = stat.ModTime()
			changed = true
		}
	}
	return changed
}
