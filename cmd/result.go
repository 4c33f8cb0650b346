package cmd

import (
	"github.com/spf13/cobra"
	"github.com/speechmatics/smcli/internal/api"
	"github.com/speechmatics/smcli/internal/output"
)

var (
	rAccount accountFlags
	rOutput  string
	rFormat  bool
	rType    string
)

var resultCmd = &cobra.Command{
	Use:   "result <job-id>",
	Short: "Fetch the output of a finished job",
	Long: `Fetch the transcript or alignment produced by a finished job and write it
to a file or standard output.

The job type is looked up first so the right output endpoint is used; pass
--type to skip that lookup.`,
	Args: jobIDArg,
	RunE: runResult,
}

func init() {
	addAccountFlags(resultCmd, &rAccount)
	resultCmd.Flags().StringVarP(&rOutput, "output", "o", "", "output filename (prints to terminal if not given)")
	resultCmd.Flags().BoolVarP(&rFormat, "format", "f", false, "alternate output format (plain text transcript, one timing per line alignment)")
	resultCmd.Flags().StringVar(&rType, "type", "", "job type (transcription or alignment); skips the details lookup")
}

func runResult(cmd *cobra.Command, args []string) error {
	cfg, err := rAccount.load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	jobID := api.JobID(args[0])

	var jobType api.JobType
	if rType != "" {
		jobType = api.JobType(rType)
		if _, err := jobType.OutputSegment(); err != nil {
			return &usageError{msg: err.Error()}
		}
	} else {
		details, err := client.JobDetails(ctx, jobID)
		if err != nil {
			return err
		}
		if err := details.Failure(); err != nil {
			return err
		}
		jobType = details.Type
	}

	payload, err := client.Output(ctx, jobID, jobType, rFormat)
	if err != nil {
		return err
	}
	rendered, err := output.Render(payload, jobType, rFormat, cfg.Output.WrapTranscriptJSON)
	if err != nil {
		return err
	}
	return output.Write(rOutput, rendered)
}
