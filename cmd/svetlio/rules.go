package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/config"
	"github.com/SPartenev/ai-svetlio-pro/internal/rules"
	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
)

var rulesTargets []string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Generate IDE/agent rule files from the memory directory",
	Long: `Generates rule files pointing AI coding assistants at .memory/.
Supported targets: cursor, windsurf, cline, claude. Without --target the
configured default set is generated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}

		targets := rulesTargets
		if len(targets) == 0 {
			targets = config.RulesTargets()
		}

		written, err := rules.Generate(root, targets)
		if err != nil {
			return err
		}
		fmt.Printf("%s generated %d rule file(s)\n", ui.RenderPass("✓"), len(written))
		for _, path := range written {
			fmt.Printf("  %s\n", ui.RenderMuted(path))
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringSliceVar(&rulesTargets, "target", nil, "targets to generate (repeatable)")
	rootCmd.AddCommand(rulesCmd)
}
