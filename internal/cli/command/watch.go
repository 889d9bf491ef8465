package command

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/data-respons-solutions/nvram/internal/cli/config"
	"github.com/data-respons-solutions/nvram/internal/infra/confloader"
	"github.com/data-respons-solutions/nvram/internal/infra/shutdown"
	"github.com/data-respons-solutions/nvram/internal/storage"
)

const watchShutdownTimeout = 2 * time.Second

// WatchCommand prints the section and reprints it whenever the backing file
// changes. Only the file interface has a file to watch.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:   "watch",
		Usage:  "Print entries on every change until interrupted (file interface)",
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	st := stateFrom(c)
	kind, err := storage.ParseKind(st.cfg.Interface)
	if err != nil {
		return err
	}
	if kind != storage.KindFile {
		return errors.New("watch: only the file interface can be watched")
	}
	path := st.cfg.Section(kind, st.role, config.SlotA)

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(st.logger))
	if err != nil {
		return err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return err
	}

	changes := make(chan struct{}, 1)
	w.OnChange(func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	w.StartAsync()

	h := shutdown.NewHandler(watchShutdownTimeout)
	h.OnShutdown(func(context.Context) error { return w.Stop() })

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.Wait(ctx) }()

	if err := printSection(c, st); err != nil {
		cancel()
		<-done
		return err
	}
	for {
		select {
		case <-changes:
			if err := printSection(c, st); err != nil {
				st.logger.Warn("failed reading changed section", "section", path, "error", err)
			}
		case err := <-done:
			return err
		}
	}
}

func printSection(c *cli.Context, st *state) error {
	store, closeStore, err := st.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.List(st.role)
	if err != nil {
		return err
	}
	return st.formatter().Format(c.App.Writer, entries)
}
