package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/prefs"
)

// PrefsCmd represents the prefs command
var PrefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage code generation preferences",
	Long: `Display and manage preferences.

Preference sources (later overrides earlier):
1. Built-in defaults
2. System file (/etc/wxglade/wxglade.toml)
3. User file (~/.wxglade/wxglade.toml)
4. Project file (nearest wxglade.toml above the working directory)
5. Environment variables (WXGLADE_* prefix, e.g. WXGLADE_CODEGEN_FOR_VERSION)

Examples:
  wxglade prefs show                         # Effective preferences
  wxglade prefs show --format json
  wxglade prefs get codegen.for_version
  wxglade prefs set codegen.backup_files true
  wxglade prefs validate
  wxglade prefs where`,
	Annotations: map[string]string{skipPrefs: "true"},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := prefs.Load()
		if err != nil {
			return err
		}
		return showPrefs(cmd.OutOrStdout(), cfg, prefsFormat)
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get one preference",
	Long:  "Get a preference using dot notation, e.g. codegen.for_version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := prefs.NewViper(prefs.DefaultSources())
		if err != nil {
			return err
		}
		if !v.IsSet(args[0]) {
			return errors.WithHintf(errors.Newf("preference %q not found", args[0]),
				"run 'wxglade prefs show' to list preferences")
		}
		fmt.Fprintln(cmd.OutOrStdout(), v.Get(args[0]))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one preference in the user file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := prefsFile
		if path == "" {
			path = prefs.UserPath()
		}
		if path == "" {
			return errors.New("no home directory for the user preferences file, use --file")
		}
		if err := setPref(path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓ ")+fmt.Sprintf("%s = %s in %s", args[0], args[1], path))
		return nil
	},
}

var prefsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := prefs.Load(); err != nil {
			return errors.Wrap(err, "preferences are not valid")
		}
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓ ")+"Preferences are valid")
		return nil
	},
}

var prefsWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where preferences are loaded from",
	RunE: func(cmd *cobra.Command, args []string) error {
		printSources(cmd.OutOrStdout(), prefs.DefaultSources())
		return nil
	},
}

var (
	prefsFormat string
	prefsFile   string
)

func init() {
	prefsShowCmd.Flags().StringVar(&prefsFormat, "format", "toml", "Output format: toml, json, yaml")
	prefsSetCmd.Flags().StringVar(&prefsFile, "file", "", "Preferences file to change (default: user file)")

	PrefsCmd.AddCommand(prefsShowCmd)
	PrefsCmd.AddCommand(prefsGetCmd)
	PrefsCmd.AddCommand(prefsSetCmd)
	PrefsCmd.AddCommand(prefsValidateCmd)
	PrefsCmd.AddCommand(prefsWhereCmd)
}

func showPrefs(out io.Writer, cfg *prefs.Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to marshal preferences to %s", format)
	}
	_, err = out.Write(data)
	return err
}

// setPref changes one key and checks that the file still loads.
func setPref(path, key, value string) error {
	if err := prefs.SetValue(path, key, value); err != nil {
		return err
	}
	if _, err := prefs.LoadFromFile(path); err != nil {
		return errors.WithHint(err, "the previous file was kept as "+path+".back1")
	}
	return nil
}

func printSources(out io.Writer, src prefs.Sources) {
	fmt.Fprintln(out, "Preference sources (later overrides earlier):")
	fmt.Fprintln(out, "  [DEFAULT]  built-in defaults")
	for _, s := range []struct{ label, path string }{
		{"[SYSTEM] ", src.System},
		{"[USER]   ", src.User},
		{"[PROJECT]", src.Project},
	} {
		state := pterm.Gray("missing")
		if s.path == "" {
			state = pterm.Gray("none found")
		} else if _, err := os.Stat(s.path); err == nil {
			state = pterm.Green("loaded")
		}
		fmt.Fprintf(out, "  %s  %s %s\n", s.label, s.path, state)
	}
	fmt.Fprintf(out, "  [ENV]      %s_* environment variables\n", prefs.EnvPrefix)
}
