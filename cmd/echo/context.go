package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/cli"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/contextref"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the context asset store",
	Long: `Manage the store behind context("plp://…") predicates and reference
bindings. Assets live under plp://<collection>/<asset-id> paths.

The put, get, and delete subcommands require the sqlite backend. The sync
subcommand pulls the configured git repository and loads its files into the
store, one asset per file.`,
}

var contextPutCmd = &cobra.Command{
	Use:   "put <path> <file>",
	Short: "Store a context asset from a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runContextPut,
}

var contextGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print a context asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runContextGet,
}

var contextDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Remove a context asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runContextDelete,
}

var contextSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync context assets from the configured git repository",
	RunE:  runContextSync,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextPutCmd, contextGetCmd, contextDeleteCmd, contextSyncCmd)
}

// openStore opens the sqlite context store, the only writable backend.
func openStore() (*contextref.SQLiteResolver, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Context.Backend != "sqlite" {
		return nil, cli.NewConfigError("context.backend",
			fmt.Sprintf("context store commands require the sqlite backend, configured backend is %q", cfg.Context.Backend))
	}
	return newSQLiteStore(cfg)
}

func runContextPut(cmd *cobra.Command, args []string) error {
	path, file := args[0], args[1]

	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", file, err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()
	if err := store.Put(ctx, path, string(content)); err != nil {
		return cli.NewCommandError("context put", err)
	}

	fmt.Printf("stored %s (%d bytes)\n", path, len(content))
	return nil
}

func runContextGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()
	res, err := store.Resolve(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("context get", err)
	}
	if res.Err != nil {
		return cli.NewCommandError("context get", res.Err)
	}

	fmt.Print(res.Content)
	return nil
}

func runContextDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()
	if err := store.Delete(ctx, args[0]); err != nil {
		return cli.NewCommandError("context delete", err)
	}

	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func runContextSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Context.Git.Enabled {
		return cli.NewConfigError("context.git.enabled", "git sync is not enabled")
	}
	if cfg.Context.Backend != "sqlite" {
		return cli.NewConfigError("context.backend",
			fmt.Sprintf("git sync requires the sqlite backend, configured backend is %q", cfg.Context.Backend))
	}

	store, err := newSQLiteStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	source, err := contextref.NewGitSource(contextref.GitSourceConfig{
		Repository:  cfg.Context.Git.Repository,
		Branch:      cfg.Context.Git.Branch,
		Path:        cfg.Context.Git.Path,
		LocalPath:   cfg.Context.Git.LocalPath,
		Depth:       cfg.Context.Git.Depth,
		Token:       cfg.Context.Git.Token,
		SyncTimeout: cfg.Context.Git.SyncTimeout,
	})
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()

	if err := source.Clone(ctx); err != nil {
		return cli.NewCommandError("context sync", err)
	}
	if _, err := source.Pull(ctx); err != nil {
		return cli.NewCommandError("context sync", err)
	}

	count, err := source.Sync(ctx, store)
	if err != nil {
		return cli.NewCommandError("context sync", err)
	}

	commit, err := source.CurrentCommit()
	if err == nil {
		fmt.Printf("synced %d asset(s) at %s\n", count, commit)
	} else {
		fmt.Printf("synced %d asset(s)\n", count)
	}
	return nil
}
