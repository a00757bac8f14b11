package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/cli"
	"github.com/jacksmith/trips/internal/model"
	"github.com/jacksmith/trips/internal/ops"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the whole trip collection",
	Long: `Print every saved trip in collection order.

The json format is exactly what is persisted under the saved-trips key;
yaml matches the document 'trips edit -i' opens.

Examples:
  trips dump
  trips dump --format=yaml > trips.yaml`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

var dumpFormat string

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "json", "output format: json or yaml")
	dumpCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(dumpFormat)
	if format != "json" && format != "yaml" {
		return &cli.ValidationError{Field: "format", Message: fmt.Sprintf("%q (expected json or yaml)", dumpFormat)}
	}

	a, err := loadApp(commandContext(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	view := a.Manager.List("", ops.ListOptions{})
	if view.State == ops.ViewLocked {
		return explain(ops.ErrUnauthorized)
	}

	if format == "yaml" {
		data, err := model.MarshalTripsYAML(view.Trips)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	raw, err := model.EncodeTrips(view.Trips)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(os.Stdout)
	return err
}
