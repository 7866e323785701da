package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
	"github.com/SPartenev/ai-svetlio-pro/internal/rules"
	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
)

var initWithRules bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the .memory directory in the current project",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		projectName := filepath.Base(cwd)

		created, err := memory.Scaffold(cwd, projectName)
		if err != nil {
			return err
		}

		if len(created) == 0 {
			fmt.Printf("%s memory directory already complete\n", ui.RenderMuted("→"))
		} else {
			fmt.Printf("%s initialized %s/ with %d file(s)\n", ui.RenderPass("✓"), memory.DirName, len(created))
			for _, f := range created {
				fmt.Printf("  %s\n", ui.RenderMuted(f))
			}
		}

		if initWithRules {
			written, err := rules.Generate(cwd, nil)
			if err != nil {
				return err
			}
			fmt.Printf("%s generated %d rule file(s)\n", ui.RenderPass("✓"), len(written))
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initWithRules, "rules", false, "also generate IDE rule files")
	rootCmd.AddCommand(initCmd)
}
