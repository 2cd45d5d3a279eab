package codebase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher recompiles source files under the codebase root as they change on
// disk.
type Watcher struct {
	codebase *Codebase
	fsw      *fsnotify.Watcher
	onUpdate func(path string, f *FileInfo)
}

type WatcherOption func(*Watcher)

// OnUpdate registers f to run after a file was recompiled. f receives a nil
// FileInfo when the file was removed.
func OnUpdate(f func(path string, info *FileInfo)) WatcherOption {
	return func(w *Watcher) {
		w.onUpdate = f
	}
}

func NewWatcher(c *Codebase, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{codebase: c, fsw: fsw}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches the root directory tree until ctx is done or the watcher is
// closed. Every directory is watched individually, including directories
// created while running.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.addTree(w.codebase.RootDir()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		log.Debugf("watching %s", path)
		return nil
	})
}

func (w *Watcher) handle(ev fsnotify.Event) {
	log.Debugf("event %s", ev)

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				log.Warningf("%s", err)
			}
			return
		}
	}
	if !IsSource(ev.Name) {
		return
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.codebase.RemoveFile(ev.Name)
		w.notify(ev.Name, nil)
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		f, err := w.codebase.ScanFile(ev.Name)
		if err != nil {
			log.Warningf("%s", err)
			return
		}
		w.notify(ev.Name, f)
	}
}

func (w *Watcher) notify(path string, f *FileInfo) {
	if w.onUpdate != nil {
		w.onUpdate(path, f)
	}
}
