// Command svetlio scaffolds and maintains a project's .memory directory,
// generates IDE rule files from it, and synchronizes it across machines
// through a git-backed hub repository.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/config"
	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
	"github.com/SPartenev/ai-svetlio-pro/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "svetlio",
	Short: "Project memory for AI coding assistants, synced through a git hub",
	Long: `svetlio maintains a .memory/ directory of markdown context files for AI
coding assistants, generates IDE rule files from it, and keeps it in sync
across machines through a central git repository (the hub).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Initialize()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the svetlio version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("svetlio %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// requireProjectRoot resolves the enclosing project (a directory with
// .memory) from the current working directory.
func requireProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	root := memory.FindProjectRoot(cwd)
	if root == "" {
		return "", fmt.Errorf("no %s directory found here or above, run `svetlio init` first", memory.DirName)
	}
	return root, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.RenderFail("error:"), err)
		os.Exit(1)
	}
}
