package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/mmuldo/lutter/job"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Serves LUT jobs over stdin/stdout",
	Long: `Reads CBOR start/cancel requests from stdin and writes CBOR progress,
result and error responses to stdout. Starting a job supersedes the one in
flight; responses carry the token of the job they belong to.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return job.Serve(ctx, os.Stdin, os.Stdout, logger)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
