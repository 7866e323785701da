package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/hub"
	"github.com/SPartenev/ai-svetlio-pro/internal/hubconfig"
	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Synchronize the memory directory through a central git repository",
}

var (
	hubInitURL    string
	hubInitFolder string
)

var hubInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the hub and register this project",
	Long: `Sets up the central hub repository (creating it through the gh CLI when
available, or attaching to an existing one) and registers the current
project with a folder inside it. Re-run in another project to register it
with the already-configured hub.`,
	RunE: runHubInit,
}

var hubPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push this project's memory files to the hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}
		store, err := hubconfig.NewStore()
		if err != nil {
			return err
		}
		res := hub.NewEngine(store).Push(cmd.Context(), root)
		return printSyncResult("push", res)
	},
}

var hubPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull this project's memory files from the hub",
	Long: `Pulls the hub and copies newer hub content into the local memory
directory. Any local file about to be overwritten is first copied into a
timestamped directory under .memory/backups/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}
		store, err := hubconfig.NewStore()
		if err != nil {
			return err
		}
		res := hub.NewEngine(store).Pull(cmd.Context(), root)
		return printSyncResult("pull", res)
	},
}

var hubStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show hub configuration and per-project sync state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		store, err := hubconfig.NewStore()
		if err != nil {
			return err
		}
		report, err := hub.NewEngine(store).Status(cwd)
		if err != nil {
			return fmt.Errorf("hub not configured, run `svetlio hub init` first")
		}
		printStatusReport(report)
		return nil
	},
}

var hubAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Toggle background auto-sync on memory writes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := hubconfig.NewStore()
		if err != nil {
			return err
		}
		on, err := hub.NewEngine(store).ToggleAutoSync()
		if err != nil {
			return err
		}
		if on {
			fmt.Printf("%s auto-sync enabled\n", ui.RenderPass("✓"))
		} else {
			fmt.Printf("%s auto-sync disabled\n", ui.RenderMuted("→"))
		}
		return nil
	},
}

var hubRemoveCmd = &cobra.Command{
	Use:   "remove <project>",
	Short: "Deregister a project (hub data is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := hubconfig.NewStore()
		if err != nil {
			return err
		}
		cfg, _ := store.Load()
		if cfg == nil {
			return fmt.Errorf("hub not configured, run `svetlio hub init` first")
		}
		if err := hub.NewRegistry(store).Remove(cfg, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s removed %s from sync config (hub folder kept)\n", ui.RenderPass("✓"), args[0])
		return nil
	},
}

func runHubInit(cmd *cobra.Command, args []string) error {
	root, err := requireProjectRoot()
	if err != nil {
		return err
	}
	store, err := hubconfig.NewStore()
	if err != nil {
		return err
	}
	boot := hub.NewBootstrapper(store)
	reader := bufio.NewReader(os.Stdin)

	if !boot.Bootstrapped() {
		localPath := defaultHubClonePath()

		url := hubInitURL
		if url == "" {
			fmt.Printf("%s no hub configured yet\n", ui.RenderAccent("hub init:"))
			repoName := prompt(reader, "name for a new private hub repository (empty to use an existing URL)")
			if repoName != "" {
				url, err = boot.CreateRemoteRepo(cmd.Context(), repoName)
				if errors.Is(err, hub.ErrHostingCLIUnavailable) {
					fmt.Printf("%s gh CLI not available, falling back to manual URL\n", ui.RenderWarn("!"))
					url = ""
				} else if err != nil {
					return err
				}
			}
			if url == "" {
				url = prompt(reader, "git URL of the hub repository")
				if url == "" {
					return fmt.Errorf("a hub repository URL is required")
				}
			}
		}

		if hubInitURL != "" {
			// Explicit URL: attach to an existing repository.
			if _, err := boot.AttachExisting(cmd.Context(), url, localPath); err != nil {
				return err
			}
		} else if _, err := boot.InitFresh(cmd.Context(), url, localPath); err != nil {
			// A fresh repo that already has history behaves like an existing
			// one; attach instead.
			if _, attachErr := boot.AttachExisting(cmd.Context(), url, localPath); attachErr != nil {
				return err
			}
		}
		fmt.Printf("%s hub cloned to %s\n", ui.RenderPass("✓"), localPath)
	} else {
		fmt.Printf("%s hub already configured, registering this project\n", ui.RenderMuted("→"))
	}

	cfg, _ := store.Load()
	if cfg == nil {
		return fmt.Errorf("hub configuration unexpectedly missing")
	}

	folder := hubInitFolder
	if folder == "" {
		suggested := filepath.Base(root)
		folder = prompt(reader, fmt.Sprintf("hub folder name for this project [%s]", suggested))
		if folder == "" {
			folder = suggested
		}
	}

	key, err := hub.NewRegistry(store).Register(cfg, root, folder)
	if err != nil {
		return err
	}
	fmt.Printf("%s registered %s → hub folder %s\n", ui.RenderPass("✓"), key, folder)
	return nil
}

func defaultHubClonePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".svetlio-hub")
}

func prompt(reader *bufio.Reader, question string) string {
	if !ui.IsTerminal() {
		return ""
	}
	fmt.Printf("%s ", ui.RenderAccent(question+":"))
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func printSyncResult(op string, res *hub.SyncResult) error {
	if !res.Success {
		if len(res.ChangedFiles) > 0 {
			// Partial progress is never hidden.
			fmt.Printf("%s copied before failure: %s\n", ui.RenderWarn("!"), strings.Join(res.ChangedFiles, ", "))
		}
		return fmt.Errorf("%s failed: %s", op, res.Message)
	}
	fmt.Printf("%s %s\n", ui.RenderPass("✓"), res.Message)
	for _, f := range res.ChangedFiles {
		fmt.Printf("  %s\n", ui.RenderMuted(f))
	}
	return nil
}

func printStatusReport(report *hub.StatusReport) {
	fmt.Printf("%s\n", ui.RenderAccent("Hub"))
	fmt.Printf("  remote:      %s\n", report.HubRepoURL)
	fmt.Printf("  local clone: %s\n", report.HubLocalPath)
	fmt.Printf("  auto-sync:   %v\n", report.AutoSync)
	fmt.Printf("  last update: %s\n", report.LastHubUpdate)

	for _, p := range report.Projects {
		marker := " "
		if p.Current {
			marker = ui.RenderAccent("*")
		}
		fmt.Printf("\n%s %s (%s)\n", marker, ui.RenderAccent(p.Name), p.HubFolder)
		fmt.Printf("  path: %s\n", p.LocalPath)
		fmt.Printf("  last push: %s, last pull: %s\n", p.LastPush, p.LastPull)
		if p.Current && len(p.Files) > 0 {
			for _, name := range sortedFileNames(p.Files) {
				fmt.Printf("  %-16s %s\n", name, renderFileState(p.Files[name]))
			}
		}
	}
}

func renderFileState(s hub.FileState) string {
	switch s {
	case hub.FileInSync:
		return ui.RenderPass(string(s))
	case hub.FileDiffers:
		return ui.RenderWarn(string(s))
	case hub.FileNewLocally:
		return ui.RenderAccent(string(s))
	default:
		return ui.RenderMuted(string(s))
	}
}

func sortedFileNames(m map[string]hub.FileState) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	hubInitCmd.Flags().StringVar(&hubInitURL, "url", "", "attach to an existing hub repository URL (skips prompts)")
	hubInitCmd.Flags().StringVar(&hubInitFolder, "folder", "", "hub folder name for this project (skips prompt)")
	hubCmd.AddCommand(hubInitCmd, hubPushCmd, hubPullCmd, hubStatusCmd, hubAutoCmd, hubRemoveCmd)
	rootCmd.AddCommand(hubCmd)
}
