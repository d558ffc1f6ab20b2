package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zdir/internal/cli"
	"github.com/zarlcorp/zdir/internal/config"
	"github.com/zarlcorp/zdir/internal/directory"
	"github.com/zarlcorp/zdir/internal/localid"
	"github.com/zarlcorp/zdir/internal/placeholder"
	"github.com/zarlcorp/zdir/internal/store"
	"github.com/zarlcorp/zdir/internal/tui"
	"golang.org/x/term"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zdir"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		runCLI(ctx, os.Args[1])
		_ = app.Close()
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "zdir: not a terminal; run `zdir list` for scripted output")
		_ = app.Close()
		os.Exit(1)
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, cmd string) {
	switch cmd {
	case "version":
		fmt.Printf("zdir %s\n", version)
	case "list":
		cli.CmdList(ctx, os.Args[2:])
	case "get":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: zdir get <id>")
			os.Exit(1)
		}
		cli.CmdGet(ctx, os.Args[2], os.Args[3:])
	case "add":
		cli.CmdAdd(ctx, os.Stdin)
	default:
		fmt.Fprintf(os.Stderr, "zdir: unknown command %q\n", cmd)
		os.Exit(1)
	}
}

func runTUI() error {
	dataDir := cli.DataDir()
	configPath := cli.ConfigPath(dataDir)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	st := store.New(zfilesystem.NewOSFileSystem(dataDir))
	client := placeholder.NewClient(cfg.ClientConfig())
	dir := directory.Open(client, st, localid.New())

	m := tui.New(version, configPath, dir, client, cfg)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
