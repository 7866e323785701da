package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/config"
	"github.com/SPartenev/ai-svetlio-pro/internal/hub"
	"github.com/SPartenev/ai-svetlio-pro/internal/hubconfig"
	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the memory directory and auto-push changes to the hub",
	Long: `Watches .memory/ for writes to tracked files and triggers debounced
silent pushes to the hub. Requires auto-sync to be enabled
(` + "`svetlio hub auto`" + `). Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}
		store, err := hubconfig.NewStore()
		if err != nil {
			return err
		}
		cfg, _ := store.Load()
		if cfg == nil {
			return fmt.Errorf("hub not configured, run `svetlio hub init` first")
		}
		if !cfg.AutoSyncEnabled {
			fmt.Printf("%s auto-sync is disabled; enable it with `svetlio hub auto`\n", ui.RenderWarn("!"))
		}

		engine := hub.NewEngine(store)
		trigger := hub.NewAutoTriggerWithWindow(engine, config.DebounceWindow())

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(memory.Dir(root)); err != nil {
			return fmt.Errorf("watching %s: %w", memory.Dir(root), err)
		}

		// Catch up before settling into watch mode.
		engine.AutoPull(cmd.Context(), root)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		fmt.Printf("%s watching %s (debounce %s)\n", ui.RenderAccent("watch:"), memory.Dir(root), config.DebounceWindow())
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				name := filepath.Base(event.Name)
				if !memory.IsSyncable(name) {
					continue
				}
				fmt.Printf("%s %s changed\n", ui.RenderMuted("→"), name)
				trigger.FileChanged(root, name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Printf("%s watch error: %v\n", ui.RenderWarn("!"), err)
			case <-sigCh:
				fmt.Printf("\n%s stopped\n", ui.RenderMuted("→"))
				return nil
			case <-cmd.Context().Done():
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
