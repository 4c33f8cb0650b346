package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/speechmatics/smcli/internal/api"
)

var stAccount accountFlags

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Print the current status of a job",
	Long: `Look up a job and print its status (e.g. transcribing, done,
unsupported_file_format) to stdout.

The command exits 0 whenever the lookup succeeds, whatever the status says;
it reports on the job rather than judging it.`,
	Args: jobIDArg,
	RunE: runStatus,
}

func init() {
	addAccountFlags(statusCmd, &stAccount)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := stAccount.load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	details, err := client.JobDetails(cmd.Context(), api.JobID(args[0]))
	if err != nil {
		return err
	}
	fmt.Println(details.Status)
	if !details.Status.Terminal() {
		fmt.Fprintf(os.Stderr, "Next check suggested in %.0f seconds\n", details.CheckWait)
	}
	return nil
}
