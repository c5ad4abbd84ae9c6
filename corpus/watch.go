package corpus

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/fictadex/model"
)

const reloadDelay = 250 * time.Millisecond

// Watch calls fn with the freshly decoded works, or the decode error, each
// time the file at path settles after a change. It blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func([]*model.Work, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	debounced := debounce.New(reloadDelay)
	reload := func() {
		fn(LoadWorks(path))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				debounced(reload)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, err)
		}
	}
}
