package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new trips directory",
	Long: `Create a .trips/ directory for your saved trips.

The collection starts with a few sample trips the first time it is loaded.
Settings such as the storage backend go in .tripsconfig.yaml next to .trips/.

Fails if .trips/ already exists.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := storage.Init(rootDir)
	if err != nil {
		return err
	}

	fmt.Printf("Initialized trips in %s\n", s.TripsPath())
	fmt.Println("Run 'trips login <email>' to start planning.")
	return nil
}
