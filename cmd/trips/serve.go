package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the trips JSON API for a browser UI",
	Long: `Start a local HTTP server exposing the trip collection as JSON.

Trips load in the background; until they are ready the list endpoint
reports a loading state. Cross-origin requests are allowed from
localhost so a development UI can talk to it.

Examples:
  trips serve
  trips serve --addr=127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from .tripsconfig.yaml)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	addr := serveAddr
	if addr == "" {
		addr = a.Config.ListenAddr
	}

	srv := httpapi.NewServer(a.Manager, a.Session, a.Notices.Buffer, a.Logger)
	fmt.Printf("Serving trips on http://%s\n", addr)
	return srv.ListenAndServe(ctx, addr)
}
