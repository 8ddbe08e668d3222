package main

import (
	"fmt"
	"os"

	"golang.design/x/hotkey/mainthread"

	"globalaccel/backend"
	"globalaccel/backend/xhotkey"
	"globalaccel/cmd"
	"globalaccel/config"
	"globalaccel/daemon"
)

func newSource(cfg *config.Config) (daemon.Source, error) {
	if cfg.Backend == config.BackendNone {
		return backend.NewRecorder(), nil
	}
	b, err := xhotkey.New()
	if err != nil {
		return nil, err
	}
	return b, nil
}

func main() {
	code := 0
	// Hotkey registration on macOS has to happen on the main thread.
	mainthread.Init(func() {
		root := cmd.NewRootCommand(cmd.Platform{
			NewSource:  newSource,
			HasMetaKey: xhotkey.HasMetaKey,
		})
		if err := root.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		}
	})
	os.Exit(code)
}
