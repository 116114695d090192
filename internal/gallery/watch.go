package gallery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gallery-room/internal/logger"
)

// watchDebounce collapses the burst of events an editor save or a file copy produces.
const watchDebounce = 250 * time.Millisecond

// Watch reloads a local source (manifest file or image directory) whenever it changes and sends
// the new photo list on the returned channel. Only the latest list is kept if the receiver is slow.
// The channel is closed when ctx is done. Reload errors are logged and skipped.
func Watch(ctx context.Context, source string, log *logger.Logger) (<-chan []Photo, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("gallery: watch: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("gallery: watch: %w", err)
	}
	// Editors often replace files instead of writing them, so watch the directory and filter.
	dir, name := source, ""
	if !info.IsDir() {
		dir, name = filepath.Dir(source), filepath.Base(source)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("gallery: watch %s: %w", dir, err)
	}

	out := make(chan []Photo, 1)
	go func() {
		defer close(out)
		defer w.Close()

		timer := time.NewTimer(watchDebounce)
		timer.Stop()
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if name != "" && filepath.Base(ev.Name) != name {
					continue
				}
				if ev.Op == fsnotify.Chmod {
					continue
				}
				timer.Reset(watchDebounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnf("gallery: watch %s: %v", source, err)
			case <-timer.C:
				photos, err := Load(ctx, source)
				if err != nil {
					log.Warnf("gallery: reload %s: %v", source, err)
					continue
				}
				log.Infof("gallery: reloaded %s (%d photos)", source, len(photos))
				select {
				case <-out:
				default:
				}
				out <- photos
			}
		}
	}()
	return out, nil
}
