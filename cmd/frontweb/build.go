package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const rebuildDebounce = 300 * time.Millisecond

func newBuildCmd(c *cli) *cobra.Command {
	var (
		out   string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the blog as static files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				c.cfg.OutputDir = out
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := c.newApp()
			build := func() error {
				res, err := app.Export(ctx, c.cfg.OutputDir)
				if err != nil {
					return err
				}
				if res.Resized > 0 {
					logger.Infof("scaled down %d images", res.Resized)
				}
				return nil
			}
			if err := build(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			logger.Infof("watching %s and %s for changes", c.cfg.ContentDir, c.cfg.StaticDir)
			return watchDirs(ctx, []string{c.cfg.ContentDir, c.cfg.StaticDir}, rebuildDebounce, func() {
				if err := build(); err != nil {
					logger.Errorf("rebuild failed: %v", err)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild when content or static files change")
	return cmd
}

// watchDirs calls rebuild once changes under dirs have settled for debounce.
// Directories created while watching are added to the watcher. It returns
// when ctx is done.
func watchDirs(ctx context.Context, dirs []string, debounce time.Duration, rebuild func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range dirs {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			logger.Warnf("%s not found, not watching", root)
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warnf("watch %s: %v", event.Name, err)
					}
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watcher: %v", err)
		case <-timer.C:
			rebuild()
		}
	}
}
