package main

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads the config file when it changes on disk and delivers
// the parsed result on Events. Edits arriving within 100ms of each other are
// coalesced.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan *Config
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchConfig starts watching the directory holding path for changes to the
// config file itself.
func WatchConfig(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		Events:  make(chan *Config, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher. Safe to call more than once.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
		<-cw.done
		close(cw.Events)
		close(cw.Errors)
	})
	return err
}

func (cw *ConfigWatcher) run() {
	defer close(cw.done)
	var last time.Time
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now

			cfg, err := LoadConfig(cw.path)
			if err != nil {
				select {
				case cw.Errors <- err:
				default:
				}
				continue
			}
			select {
			case cw.Events <- cfg:
			case <-cw.closeCh:
				return
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case cw.Errors <- err:
			default:
			}
		case <-cw.closeCh:
			return
		}
	}
}
