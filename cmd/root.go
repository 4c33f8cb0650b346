package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/speechmatics/smcli/internal/api"
	"github.com/speechmatics/smcli/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "smcli",
	Short: "Speechmatics transcription and alignment jobs from the command line",
	Long: `Submit audio to the Speechmatics REST API for transcription, or audio plus
text for alignment, then poll the job and fetch its output.

Credentials come from flags, the SPEECHMATICS_USER_ID / SPEECHMATICS_AUTH_TOKEN
environment variables, or the config file (run "smcli configure" to create one).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(configureCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(os.Stderr, cmd.UsageString())
		return &usageError{msg: err.Error()}
	})
}

// usageError marks bad flag combinations and missing credentials. These exit
// with code 2, like flag parse failures, so scripts can tell them apart from
// jobs that actually went wrong.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// Cobra does not route positional-argument failures through SetFlagErrorFunc,
// so these validators carry the usage error type themselves.

// noArgs rejects stray positional arguments.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{msg: err.Error()}
	}
	return nil
}

// jobIDArg requires exactly one positional argument, the job id.
func jobIDArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &usageError{msg: fmt.Sprintf("expected exactly one job id argument, got %d", len(args))}
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// ExecuteProcess runs the process command directly, for invocations through a
// legacy "speechmatics" binary name.
func ExecuteProcess() {
	rootCmd.SetArgs(append([]string{"process"}, os.Args[1:]...))
	Execute()
}

func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// accountFlags are shared by every command that talks to the API.
type accountFlags struct {
	id      string
	token   string
	baseURL string
	config  string
}

func addAccountFlags(cmd *cobra.Command, f *accountFlags) {
	cmd.Flags().StringVarP(&f.id, "id", "i", "", "Speechmatics user id")
	cmd.Flags().StringVarP(&f.token, "token", "k", "", "API authentication token")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "API endpoint (defaults to the public service)")
	cmd.Flags().StringVar(&f.config, "config", "", "config file path")
}

// load merges the config file, environment and flags, in rising priority.
func (f *accountFlags) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.config != "" {
		cfg, err = config.LoadFrom(f.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()

	if f.id != "" {
		cfg.API.UserID = f.id
	}
	if f.token != "" {
		cfg.API.AuthToken = f.token
	}
	if f.baseURL != "" {
		cfg.API.BaseURL = f.baseURL
	}
	return cfg, nil
}

func newClient(cfg *config.Config) (*api.Client, error) {
	if cfg.API.UserID == "" {
		return nil, &usageError{msg: "no user id given: set --id, SPEECHMATICS_USER_ID, or api.user_id in the config file"}
	}
	if cfg.API.AuthToken == "" {
		return nil, &usageError{msg: "no auth token given: set --token, SPEECHMATICS_AUTH_TOKEN, or api.auth_token in the config file"}
	}
	return api.NewClient(cfg.API.UserID, cfg.API.AuthToken, cfg.API.BaseURL), nil
}
