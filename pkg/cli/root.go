// Package cli implements the datasync command-line client.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"datasync-console/internal/datasync"
)

var (
	version = "dev"
	commit  = "none"
)

const defaultHost = "http://localhost:8080"

// session carries the resolved global flags to every command.
type session struct {
	host           string
	globalQueryURL string
	output         string
	profile        string
	timeout        time.Duration
	noColor        bool

	client *datasync.Client
}

// backend returns the DataSync client for the resolved host.
func (s *session) backend() *datasync.Client {
	if s.client == nil {
		s.client = datasync.New(s.host,
			datasync.WithGlobalQueryURL(s.globalQueryURL),
			datasync.WithLogger(slog.New(slog.DiscardHandler)),
		)
	}
	return s.client
}

func (s *session) jsonOutput() bool { return s.output == "json" }

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stdout, os.Stderr, getOutputFormat(rootCmd), err)
		return 1
	}
	return 0
}

// getOutputFormat returns the output format for error reporting, which runs
// after the profile has gone out of scope.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.PersistentFlags().GetString("output")
	if !cmd.PersistentFlags().Changed("output") {
		if env := os.Getenv("DATASYNC_OUTPUT"); env != "" {
			return env
		}
	}
	return v
}

func reportError(stdout, stderr io.Writer, output string, err error) {
	if output == "json" {
		errObj := map[string]interface{}{"error": err.Error()}
		var apiErr *datasync.APIError
		if errors.As(err, &apiErr) {
			errObj["http_status"] = apiErr.StatusCode
			errObj["path"] = apiErr.Path
		}
		_ = printJSON(stdout, errObj)
		return
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
}

func newRootCmd() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:           "datasync",
		Short:         "DataSync federation CLI",
		Long:          "Command-line interface for the DataSync federation API: catalogs, the global schema, relations, queries and the assistant.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
			}
			p, err := cfg.ActiveProfile(s.profile)
			if err != nil {
				return err
			}

			// flag > env > profile > default
			flags := cmd.Flags()
			resolveFlag(flags, "host", &s.host, "DATASYNC_HOST", p.Host)
			resolveFlag(flags, "global-query-url", &s.globalQueryURL, "DATASYNC_GLOBAL_QUERY_URL", p.GlobalQueryURL)
			resolveFlag(flags, "output", &s.output, "DATASYNC_OUTPUT", p.Output)
			if err := validateOutputFormat(s.output); err != nil {
				return err
			}
			if s.noColor || os.Getenv("NO_COLOR") != "" {
				disableColor()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.host, "host", defaultHost, "DataSync API URL")
	flags.StringVar(&s.globalQueryURL, "global-query-url", "", "Federated query endpoint (default {host}/query/global)")
	flags.StringVarP(&s.output, "output", "o", "table", "Output format (table, json)")
	flags.StringVarP(&s.profile, "profile", "p", "", "Config profile to use")
	flags.DurationVar(&s.timeout, "timeout", datasync.DefaultTimeout, "Per-command timeout")
	flags.BoolVar(&s.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newHealthCmd(s))
	rootCmd.AddCommand(newSyncCmd(s))
	rootCmd.AddCommand(newCatalogsCmd(s))
	rootCmd.AddCommand(newSchemasCmd(s))
	rootCmd.AddCommand(newTablesCmd(s))
	rootCmd.AddCommand(newColumnsCmd(s))
	rootCmd.AddCommand(newGlobalCmd(s))
	rootCmd.AddCommand(newRelationsCmd(s))
	rootCmd.AddCommand(newRelationshipsCmd(s))
	rootCmd.AddCommand(newQueryCmd(s))
	rootCmd.AddCommand(newChatCmd(s))

	rootCmd.AddCommand(newVersionCmd(s))
	rootCmd.AddCommand(newConfigCmd(s))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// resolveFlag fills target from the environment or the profile when the flag
// was not set explicitly.
func resolveFlag(flags *pflag.FlagSet, name string, target *string, env, profileValue string) {
	if flags.Changed(name) {
		return
	}
	if v := os.Getenv(env); v != "" {
		*target = v
	} else if profileValue != "" {
		*target = profileValue
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

func newVersionCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": version, "commit": commit})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "datasync version %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
