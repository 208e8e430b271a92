package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avm2/avm2/vm"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
)

// watchCommand hot-reloads an ABC-JSON file as it changes on disk,
// reloading it into a fresh VM on every write (spec.md's load_abc can be
// invoked repeatedly; nothing about the domain tree requires a single
// process-lifetime load). Borrowed from C360Studio-semspec's use of
// fsnotify for config hot-reload — the same "watch one path, rebuild
// state on Write" shape, applied here to an ABC document instead of a
// config file.
var watchCommand = &cli.Command{
	Name:      "watch",
	Usage:     "Watch an ABC-JSON file and reload it into a fresh VM on every change",
	ArgsUsage: "<file.json>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.Args().First()
		if path == "" {
			return fmt.Errorf("watch: missing <file.json> argument")
		}
		return watchFile(ctx, path)
	},
}

func watchFile(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	reload := func() {
		machine := vm.New(vm.WithTraceWriter(os.Stdout))
		unit, err := loadFile(machine, path, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Printf("reloaded %d script(s) from %s\n", len(unit.Scripts()), path)
	}

	reload()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch:", err)
		}
	}
}
