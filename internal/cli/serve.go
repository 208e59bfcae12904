package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/habitloop/habitd/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the habitd daemon (HTTP API + reminder loop)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	return d.Serve(context.Background())
}
