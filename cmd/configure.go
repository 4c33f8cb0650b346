package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/speechmatics/smcli/internal/config"
	"github.com/speechmatics/smcli/internal/tui"
)

var (
	cAccount accountFlags
	cLang    string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Create or update the config file",
	Long: `Prompt for account credentials and defaults and write them to the config
file. Pass flags to set values without prompting.

Examples:
  configure
  configure --id 7 --token sekrit
  configure --config ./smcli.toml -l de`,
	Args: noArgs,
	RunE: runConfigure,
}

func init() {
	addAccountFlags(configureCmd, &cAccount)
	configureCmd.Flags().StringVarP(&cLang, "lang", "l", "", "default language/model code")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path := cAccount.config
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return fmt.Errorf("cannot determine config path: %w", err)
		}
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	flagged := cmd.Flags().Changed("id") || cmd.Flags().Changed("token") ||
		cmd.Flags().Changed("base-url") || cmd.Flags().Changed("lang")
	switch {
	case flagged:
		if cAccount.id != "" {
			cfg.API.UserID = cAccount.id
		}
		if cAccount.token != "" {
			cfg.API.AuthToken = cAccount.token
		}
		if cmd.Flags().Changed("base-url") {
			cfg.API.BaseURL = cAccount.baseURL
		}
		if cLang != "" {
			cfg.Job.Language = cLang
		}

	case isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd()):
		current := tui.AccountValues{
			UserID:    cfg.API.UserID,
			AuthToken: cfg.API.AuthToken,
			BaseURL:   cfg.API.BaseURL,
			Language:  cfg.Job.Language,
		}
		completed, err := tui.RunConfigure(current, func(v tui.AccountValues) error {
			cfg.API.UserID = v.UserID
			cfg.API.AuthToken = v.AuthToken
			cfg.API.BaseURL = v.BaseURL
			cfg.Job.Language = v.Language
			return cfg.SaveTo(path)
		})
		if err != nil {
			return err
		}
		if !completed {
			fmt.Fprintln(os.Stderr, "Cancelled, nothing written.")
			return nil
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		return nil

	default:
		// Line prompts when stdin is piped or redirected.
		reader := bufio.NewReader(os.Stdin)
		cfg.API.UserID = prompt(reader, "User id", cfg.API.UserID, cfg.API.UserID)
		cfg.API.AuthToken = prompt(reader, "Auth token", cfg.API.AuthToken, maskToken(cfg.API.AuthToken))
		cfg.API.BaseURL = prompt(reader, "API endpoint (empty for the public service)", cfg.API.BaseURL, cfg.API.BaseURL)
		cfg.Job.Language = prompt(reader, "Default language", cfg.Job.Language, cfg.Job.Language)
	}

	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}

// prompt asks for a value on stderr, showing shown as the current value, and
// keeps current when the answer is empty.
func prompt(r *bufio.Reader, label, current, shown string) string {
	if shown != "" {
		fmt.Fprintf(os.Stderr, "%s [%s]: ", label, shown)
	} else {
		fmt.Fprintf(os.Stderr, "%s: ", label)
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// maskToken hides most of a stored token so prompts don't echo credentials.
func maskToken(tok string) string {
	if tok == "" {
		return ""
	}
	if len(tok) <= 4 {
		return "****"
	}
	return "****" + tok[len(tok)-4:]
}
