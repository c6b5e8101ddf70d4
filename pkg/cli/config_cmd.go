package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration profiles",
	}
	cmd.AddCommand(newConfigShowCmd(s))
	cmd.AddCommand(newConfigSetProfileCmd(s))
	cmd.AddCommand(newConfigUseProfileCmd(s))
	return cmd
}

func newConfigShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the resolved settings and the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := s.backend()
			resolved := map[string]string{
				"host":             c.BaseURL(),
				"global-query-url": c.GlobalQueryURL(),
				"output":           s.output,
			}
			cfg, loadErr := LoadUserConfig()

			out := cmd.OutOrStdout()
			if s.jsonOutput() {
				return printJSON(out, map[string]interface{}{
					"path":     ConfigPath(),
					"resolved": resolved,
					"file":     cfg,
				})
			}
			printTable(out, []string{"SETTING", "VALUE"}, [][]string{
				{"host", resolved["host"]},
				{"global-query-url", resolved["global-query-url"]},
				{"output", resolved["output"]},
			})
			if loadErr != nil {
				printMuted(out, "No configuration found at %s", ConfigPath())
				return nil
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, _ = fmt.Fprintf(out, "\n# %s\n%s", ConfigPath(), string(data))
			return nil
		},
	}
}

func newConfigSetProfileCmd(s *session) *cobra.Command {
	var (
		name      string
		host      string
		globalURL string
		output    string
		activate  bool
	)

	cmd := &cobra.Command{
		Use:   "set-profile",
		Short: "Create or update a configuration profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("default-output") {
				if err := validateOutputFormat(output); err != nil {
					return err
				}
			}

			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
			}

			p := cfg.Profiles[name]
			if cmd.Flags().Changed("api-host") {
				p.Host = host
			}
			if cmd.Flags().Changed("api-global-query-url") {
				p.GlobalQueryURL = globalURL
			}
			if cmd.Flags().Changed("default-output") {
				p.Output = output
			}
			cfg.Profiles[name] = p
			if activate {
				cfg.CurrentProfile = name
			}

			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"status":  "ok",
					"profile": name,
					"path":    ConfigPath(),
				})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved to %s\n", name, ConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Profile name (required)")
	cmd.Flags().StringVar(&host, "api-host", "", "DataSync API URL")
	cmd.Flags().StringVar(&globalURL, "api-global-query-url", "", "Federated query endpoint")
	cmd.Flags().StringVar(&output, "default-output", "", "Default output format")
	cmd.Flags().BoolVar(&activate, "use", false, "Make this the active profile")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newConfigUseProfileCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "use-profile <name>",
		Short: "Set the active configuration profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return fmt.Errorf("no config found: %w", err)
			}
			name := args[0]
			if _, ok := cfg.Profiles[name]; !ok {
				return fmt.Errorf("profile %q not found", name)
			}
			cfg.CurrentProfile = name
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"status": "ok", "active_profile": name})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active profile set to %q\n", name)
			return nil
		},
	}
}
