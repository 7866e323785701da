package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/config"
	"github.com/SPartenev/ai-svetlio-pro/internal/hub"
	"github.com/SPartenev/ai-svetlio-pro/internal/hubconfig"
	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
)

var logCmd = &cobra.Command{
	Use:   "log <entry...>",
	Short: "Append an entry to the work log",
	Long: `Appends a dated entry to .memory/LOG.md. With auto-sync enabled the
write also triggers a debounced background push to the hub.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}

		// The writer holds the sync trigger only as a notifier capability;
		// when no hub is configured the silent push is simply a no-op.
		var notifier memory.Notifier
		if store, err := hubconfig.NewStore(); err == nil {
			engine := hub.NewEngine(store)
			notifier = hub.NewAutoTriggerWithWindow(engine, config.DebounceWindow())
		}

		w := memory.NewWriter(root, notifier)
		if err := w.AppendLog(strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Printf("%s logged\n", ui.RenderPass("✓"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
