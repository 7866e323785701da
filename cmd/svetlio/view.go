package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
	"github.com/SPartenev/ai-svetlio-pro/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Render a memory file in the terminal",
	Long:  "Renders one memory file (default STATE.md) as styled terminal output.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}

		name := "STATE.md"
		if len(args) == 1 {
			name = args[0]
		}

		out, err := viewer.RenderFile(root, name)
		if err != nil {
			present := viewer.ListPresent(root)
			return fmt.Errorf("%w (available: %v)", err, present)
		}
		fmt.Print(out)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List memory files present in this project",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}
		for _, name := range viewer.ListPresent(root) {
			fmt.Printf("%s\n", ui.RenderMuted(name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd, listCmd)
}
