package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SPartenev/ai-svetlio-pro/internal/config"
	"github.com/SPartenev/ai-svetlio-pro/internal/ui"
	"github.com/SPartenev/ai-svetlio-pro/internal/viewer"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the memory directory as a local read-only HTML viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireProjectRoot()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = config.ViewerPort()
		}

		fmt.Printf("%s viewing %s at http://127.0.0.1:%d/ (Ctrl-C to stop)\n",
			ui.RenderAccent("serve:"), root, port)
		return viewer.ListenAndServe(root, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
