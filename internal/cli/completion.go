package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/mesh"
	"github.com/matzehuels/trussmesh/pkg/pipeline"
	"github.com/matzehuels/trussmesh/pkg/render/nodelink"
	"github.com/matzehuels/trussmesh/pkg/units"
)

// completionCommand prints a shell completion script. Flag values such as
// --unit and --format complete from the supported names.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell, for example:

  source <(trussmesh completion bash)
  trussmesh completion fish | source`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCompletions attaches value completion to the mesh flags of every
// subcommand of root.
func registerCompletions(root *cobra.Command) {
	unitNames := append(units.Names(), unitAsk)
	fixed := map[string][]string{
		"unit":        unitNames,
		"source-unit": units.Names(),
		"ordering":    {string(mesh.OrderLexicographic), string(mesh.OrderLegacy)},
		"plane":       {string(nodelink.PlaneXZ), string(nodelink.PlaneXY), string(nodelink.PlaneYZ)},
	}

	for _, cmd := range root.Commands() {
		for flag, values := range fixed {
			if cmd.Flags().Lookup(flag) == nil {
				continue
			}
			_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		}
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
		}
	}
}

// completeFormats completes the last element of a comma-separated format
// list, leaving out formats already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	given := strings.Split(toComplete, ",")
	prefix := strings.Join(given[:len(given)-1], ",")
	if prefix != "" {
		prefix += ","
	}

	var out []string
	for _, f := range formatNames() {
		if slices.Contains(given[:len(given)-1], f) {
			continue
		}
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func formatNames() []string {
	names := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}
