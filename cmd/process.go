package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/speechmatics/smcli/internal/api"
	"github.com/speechmatics/smcli/internal/config"
	"github.com/speechmatics/smcli/internal/output"
	"github.com/speechmatics/smcli/internal/tui"
)

// submitFlags describe one job submission. Shared between process and submit.
type submitFlags struct {
	audio             string
	text              string
	lang              string
	notification      string
	notificationEmail string
	callbackURL       string
}

func addSubmitFlags(cmd *cobra.Command, f *submitFlags) {
	cmd.Flags().StringVarP(&f.audio, "audio", "a", "", "audio file to be processed")
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "text file to align against (makes this an alignment job)")
	cmd.Flags().StringVarP(&f.lang, "lang", "l", "", "language/model code, optionally model=version (e.g. en-US or en-US=1.2)")
	cmd.Flags().StringVarP(&f.notification, "notification", "n", "", "completion notification: email, none or callback")
	cmd.Flags().StringVarP(&f.notificationEmail, "notification-email", "e", "", "alternative email address for the completion notification")
	cmd.Flags().StringVarP(&f.callbackURL, "callback-url", "u", "", "URL to POST to when the job completes")
}

// merge fills unset flags from the config file defaults.
func (f *submitFlags) merge(cfg *config.Config) {
	if f.lang == "" {
		f.lang = cfg.Job.Language
	}
	if f.notification == "" {
		f.notification = cfg.Job.Notification
	}
	if f.callbackURL == "" {
		f.callbackURL = cfg.Job.CallbackURL
	}
	if f.notificationEmail == "" {
		f.notificationEmail = cfg.Job.NotificationEmail
	}
}

// validate applies the submission rules before anything touches the network.
func (f *submitFlags) validate() error {
	if f.audio == "" {
		return &usageError{msg: "no audio file given: set --audio"}
	}
	switch f.notification {
	case "", api.NotifyEmail, api.NotifyNone, api.NotifyCallback:
	default:
		return &usageError{msg: fmt.Sprintf("invalid notification type %q: choose email, none or callback", f.notification)}
	}
	if f.notificationEmail != "" && (f.notification == api.NotifyNone || f.notification == api.NotifyCallback) {
		return &usageError{msg: fmt.Sprintf("you specified an alternative email address but selected %q notification", f.notification)}
	}
	if f.notification == api.NotifyCallback && f.callbackURL == "" {
		return &usageError{msg: "you selected notification type of callback but did not provide a callback URL"}
	}
	return nil
}

func (f *submitFlags) opts() api.SubmitOpts {
	return api.SubmitOpts{
		AudioPath:         f.audio,
		TextPath:          f.text,
		Language:          f.lang,
		Notification:      f.notification,
		CallbackURL:       f.callbackURL,
		NotificationEmail: f.notificationEmail,
	}
}

var (
	pAccount accountFlags
	pSubmit  submitFlags
	pOutput  string
	pFormat  bool
	pNoTUI   bool
	pQuiet   bool
)

var processCmd = &cobra.Command{
	Use:   "process [flags]",
	Short: "Submit a job, wait for it, and fetch its output",
	Long: `Submit an audio file (plus an optional text file for alignment), poll the
job until the server finishes with it, and write the output to a file or
standard output.

Examples:
  process -a talk.wav
  process -a talk.wav -t talk.txt -o aligned.txt
  process -a talk.wav -l de --format
  process -a talk.wav -n callback -u https://example.com/hook`,
	Args: noArgs,
	RunE: runProcess,
}

func init() {
	addAccountFlags(processCmd, &pAccount)
	addSubmitFlags(processCmd, &pSubmit)
	processCmd.Flags().StringVarP(&pOutput, "output", "o", "", "output filename (prints to terminal if not given)")
	processCmd.Flags().BoolVarP(&pFormat, "format", "f", false, "alternate output format (plain text transcript, one timing per line alignment)")
	processCmd.Flags().BoolVar(&pNoTUI, "no-tui", false, "plain progress lines instead of the live status display")
	processCmd.Flags().BoolVarP(&pQuiet, "quiet", "q", false, "suppress progress output")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := pAccount.load()
	if err != nil {
		return err
	}
	pSubmit.merge(cfg)
	if err := pSubmit.validate(); err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	jobID, err := client.SubmitJob(ctx, pSubmit.opts())
	if err != nil {
		return err
	}
	progress("Your job has started with ID %s\n", jobID)

	var details *api.JobDetails
	if !pNoTUI && !pQuiet && isatty.IsTerminal(os.Stderr.Fd()) {
		details, err = tui.RunWait(ctx, client, jobID)
	} else {
		details, err = client.Await(ctx, jobID, func(d *api.JobDetails) {
			progress("Waiting for job to be processed.  Will check again in %.0f seconds\n", d.CheckWait)
		})
	}
	if err != nil {
		return err
	}
	if err := details.Failure(); err != nil {
		return err
	}
	progress("Processing complete, getting output\n")

	payload, err := client.Output(ctx, jobID, details.Type, pFormat)
	if err != nil {
		return err
	}
	rendered, err := output.Render(payload, details.Type, pFormat, cfg.Output.WrapTranscriptJSON)
	if err != nil {
		return err
	}
	if err := output.Write(pOutput, rendered); err != nil {
		return err
	}
	if pOutput != "" {
		progress("Your job output has been written to file %s\n", pOutput)
	}
	return nil
}

func progress(format string, args ...any) {
	if pQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
