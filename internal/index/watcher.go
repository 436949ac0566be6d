package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	ignore "github.com/sabhiram/go-gitignore"
)

// maxWatchedDirs limits directory watches to prevent file descriptor
// exhaustion on large workspaces.
const maxWatchedDirs = 1000

// workspaceWatcher invalidates cached translation units when Go files
// change on disk. Unsaved buffers are unaffected; they always win over
// disk content.
type workspaceWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchWorkspace watches every directory under root, skipping common
// junk directories and anything matched by the root .gitignore.
func (ix *GoIndex) WatchWorkspace(root string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create workspace watcher: %w", err)
	}

	gi := loadGitignore(root)
	count := 0
	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if isIgnoredDir(entry.Name()) {
			return filepath.SkipDir
		}
		if gi != nil {
			if rel, rerr := filepath.Rel(root, path); rerr == nil && rel != "." && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
		}
		if count >= maxWatchedDirs {
			return filepath.SkipDir
		}
		if werr := w.Add(path); werr != nil {
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		w.Close()
		return fmt.Errorf("failed to walk workspace %s: %w", root, err)
	}

	ww := &workspaceWatcher{watcher: w, done: make(chan struct{})}
	ix.watcher = ww
	go ix.watchLoop(ww)

	slog.Debug("Watching workspace", "root", root, "dirs", count)
	return nil
}

func (ix *GoIndex) watchLoop(ww *workspaceWatcher) {
	for {
		select {
		case <-ww.done:
			return
		case event, ok := <-ww.watcher.Events:
			if !ok {
				return
			}
			ix.handleEvent(ww, event)
		case err, ok := <-ww.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Workspace watcher error", "error", err)
		}
	}
}

func (ix *GoIndex) handleEvent(ww *workspaceWatcher, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !isIgnoredDir(filepath.Base(event.Name)) {
				_ = ww.watcher.Add(event.Name)
			}
			return
		}
	}
	if !strings.HasSuffix(event.Name, ".go") {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		ix.invalidateDir(filepath.Dir(event.Name))
	}
}

func (ww *workspaceWatcher) close() error {
	close(ww.done)
	return ww.watcher.Close()
}

// loadGitignore compiles the workspace's .gitignore, if there is one.
func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func isIgnoredDir(name string) bool {
	switch name {
	case ".git", "vendor", "node_modules":
		return true
	}
	return false
}
