package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// newRootCmd builds the command tree. Subcommands only decode their
// arguments into *decoded; running them is dispatch's job.
func newRootCmd(v *viper.Viper, decoded *Command) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasks",
		Short:         "A tiny task tracker backed by a JSON file",
		Version:       appVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return usagef("missing command")
		},
		Example: `  tasks add "Buy milk"
  tasks list
  tasks done 1
  tasks list --all
  tasks delete 1`,
	}
	root.SetVersionTemplate("tasks {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringP("file", "f", "", "path to the tasks file (default: tasks.json next to the executable)")
	pf.String("config", "", "config file (default: $XDG_CONFIG_HOME/tasks/config.yaml)")
	pf.String("theme", "classic", "output theme: classic, neon or mono")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("verbose", "v", false, "log store activity to stderr")
	_ = v.BindPFlag(config.KeyFile, pf.Lookup("file"))
	_ = v.BindPFlag(config.KeyConfig, pf.Lookup("config"))
	_ = v.BindPFlag(config.KeyTheme, pf.Lookup("theme"))
	_ = v.BindPFlag(config.KeyNoColor, pf.Lookup("no-color"))
	_ = v.BindPFlag(config.KeyVerbose, pf.Lookup("verbose"))

	root.AddCommand(
		newAddCmd(decoded),
		newListCmd(decoded),
		newDoneCmd(decoded),
		newDeleteCmd(decoded),
		newVersionCmd(),
	)
	return root
}

func newAddCmd(decoded *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new task (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*decoded = AddCmd{Title: strings.Join(args, " ")}
			return nil
		},
	}
}

func newListCmd(decoded *Command) *cobra.Command {
	var lc ListCmd
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pending tasks (or all with --all)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch lc.Format {
			case FormatText, FormatJSON, FormatYAML:
			default:
				return usagef("list: unknown output format %q (want text, json or yaml)", lc.Format)
			}
			if lc.Interactive && lc.Format != FormatText {
				return usagef("list: --interactive can't be combined with --output %s", lc.Format)
			}
			if lc.Group {
				lc.All = true
			}
			*decoded = lc
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&lc.All, "all", "a", false, "include completed tasks")
	f.BoolVarP(&lc.Group, "group", "g", false, "group output by pending/done (implies --all)")
	f.BoolVarP(&lc.Interactive, "interactive", "i", false, "browse tasks in a full-screen list")
	f.StringVarP(&lc.Format, "output", "o", FormatText, "output format: text, json or yaml")
	return cmd
}

func newDoneCmd(decoded *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			*decoded = DoneCmd{ID: id}
			return nil
		},
	}
}

func newDeleteCmd(decoded *Command) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("delete", args[0])
			if err != nil {
				return err
			}
			*decoded = DeleteCmd{ID: id}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tasks %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
		},
	}
}

// idCommands take a single <id> that may be negative.
var idCommands = map[string]bool{"done": true, "delete": true, "rm": true}

// valueFlags are the persistent flags that consume the next argument.
var valueFlags = map[string]bool{"-f": true, "--file": true, "--config": true, "--theme": true}

// markNegativeIDs inserts "--" before a negative number following done or
// delete, so "done -1" looks up id -1 instead of failing on flag "-1".
func markNegativeIDs(args []string) []string {
	sub := -1
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return args
		}
		if valueFlags[a] {
			i++
			continue
		}
		if !strings.HasPrefix(a, "-") {
			if idCommands[a] {
				sub = i
			}
			break
		}
	}
	if sub < 0 {
		return args
	}
	for i := sub + 1; i < len(args); i++ {
		if args[i] == "--" {
			return args
		}
		if _, err := strconv.Atoi(args[i]); err == nil && strings.HasPrefix(args[i], "-") {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}

func parseID(cmd, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("%s: not a number: %s", cmd, s)
	}
	return n, nil
}
