package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/quire/internal/config"
	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/keys"
	"github.com/MikeBiancalana/quire/internal/layout"
)

// Script is a layout replay file.
//
//	initial: note-id        # optional content of the first pane
//	commands:
//	  - split v
//	  - close pane-2
//	  - complete pane-2
//	expect: pane-1          # optional; compared with the final tree
type Script struct {
	Initial  string   `yaml:"initial"`
	Commands []string `yaml:"commands"`
	Expect   string   `yaml:"expect"`
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect the pane layout engine",
}

var layoutReplayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Apply a script of layout commands and print each resulting tree",
	Long: `Applies the commands of a YAML script to a fresh layout without a terminal.
The tree invariants are checked after every step; the replay stops at the
first violation. Use "-" to read the script from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			r = f
		}
		script, err := readScript(r)
		if err != nil {
			return err
		}
		_, err = replay(cmd.Context(), script, cmd.OutOrStdout(), quietFlag)
		return err
	},
}

var layoutKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the effective key bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printKeys(cmd.OutOrStdout(), settings)
	},
}

func init() {
	layoutCmd.AddCommand(layoutReplayCmd)
	layoutCmd.AddCommand(layoutKeysCmd)
}

func GetLayoutCommand() *cobra.Command {
	return layoutCmd
}

// readScript decodes a Script. A bare YAML list is accepted as the command
// list.
func readScript(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		var list []string
		if lerr := yaml.Unmarshal(data, &list); lerr != nil {
			return Script{}, fmt.Errorf("failed to parse script: %w", err)
		}
		s = Script{Commands: list}
	}
	return s, nil
}

// replay applies the script to a fresh store, printing the tree after every
// command unless quiet is set. The final state is returned.
func replay(ctx context.Context, s Script, w io.Writer, quiet bool) (engine.State, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store := engine.NewStore(engine.New(s.Initial))

	for i, line := range s.Commands {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := engine.ParseCommand(line, store.State())
		if err != nil {
			return store.State(), fmt.Errorf("step %d: %w", i+1, err)
		}
		st := store.Dispatch(ctx, cmd)
		if err := st.Validate(); err != nil {
			return st, fmt.Errorf("step %d (%s): invariant violated: %w", i+1, line, err)
		}
		if !quiet {
			fmt.Fprintf(w, "%3d  %-18s %s\n", i+1, line, describe(st))
		}
	}

	final := store.State()
	got := layout.Format(final.Tree)
	fmt.Fprintln(w, got)
	if s.Expect != "" && strings.TrimSpace(s.Expect) != got {
		return final, fmt.Errorf("final layout %s, expected %s", got, strings.TrimSpace(s.Expect))
	}
	return final, nil
}

// describe formats the tree with the markers that are set.
func describe(s engine.State) string {
	var b strings.Builder
	b.WriteString(layout.Format(s.Tree))
	fmt.Fprintf(&b, " focus=%s", s.Focused)
	if s.Zoomed != "" {
		fmt.Fprintf(&b, " zoom=%s", s.Zoomed)
	}
	if len(s.Closing) > 0 {
		ids := make([]string, len(s.Closing))
		for i, id := range s.Closing {
			ids[i] = string(id)
		}
		fmt.Fprintf(&b, " closing=%s", strings.Join(ids, ","))
	}
	if s.PendingContent != "" {
		fmt.Fprintf(&b, " pending=%s", s.PendingContent)
	}
	if s.LeaderActive {
		b.WriteString(" leader")
	}
	return b.String()
}

// printKeys prints the direct and leader tables after applying the
// overrides in st.
func printKeys(w io.Writer, st config.Settings) error {
	direct, err := keys.NewKeymap(keys.DefaultBindings(), st.Keys.Bindings)
	if err != nil {
		return err
	}
	leader, err := keys.NewKeymap(keys.DefaultLeaderBindings(), st.Keys.LeaderTable)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KEY\tACTION\tDESCRIPTION")
	for _, b := range direct.Bindings() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Key, b.Action, b.Action.Description())
	}
	fmt.Fprintf(tw, "\t\t\n")
	fmt.Fprintf(tw, "LEADER (%s)\t\t\n", st.Keys.Leader)
	for _, b := range leader.Bindings() {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", st.Keys.Leader, b.Key, b.Action, b.Action.Description())
	}
	fmt.Fprintln(tw, ":\tpalette\tcommand palette")
	return tw.Flush()
}
