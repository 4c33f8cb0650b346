package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sAccount accountFlags
	sSubmit  submitFlags
)

var submitCmd = &cobra.Command{
	Use:   "submit [flags]",
	Short: "Submit a job and print its id",
	Long: `Submit an audio file (plus an optional text file for alignment) and print
the new job id to stdout, without waiting for the job to finish.

Pairs with status and result:
  smcli result $(smcli submit -a talk.wav)`,
	Args: noArgs,
	RunE: runSubmit,
}

func init() {
	addAccountFlags(submitCmd, &sAccount)
	addSubmitFlags(submitCmd, &sSubmit)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := sAccount.load()
	if err != nil {
		return err
	}
	sSubmit.merge(cfg)
	if err := sSubmit.validate(); err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	jobID, err := client.SubmitJob(cmd.Context(), sSubmit.opts())
	if err != nil {
		return err
	}
	// Just the id on stdout so it can be piped into status/result.
	fmt.Println(jobID)
	return nil
}
