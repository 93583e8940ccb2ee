package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typedoc/display"
	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/logger"
	"github.com/teranos/typedoc/typedoc"
)

// DecodeCmd decodes one TypeDoc JSON document
var DecodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a TypeDoc JSON document and summarize it",
	Long: `Decode a TypeDoc JSON document into a typed reflection tree.

Prints the project name, node counts per reflection kind and unresolved
cross references. Decoding stops at the first error, which is reported with
the field path it was found at.

Examples:
  typedoc decode docs.json                  # Summary
  typedoc decode docs.json --tree --depth 2 # Outline of the tree
  typedoc decode docs.json --format yaml    # Summary as YAML
  typedoc decode docs.json --graph          # Cross reference graph as JSON
  typedoc decode docs.json --lenient        # Drop undeclared fields`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	DecodeCmd.Flags().String("format", display.FormatText, "Output format: text, json, yaml, toml")
	DecodeCmd.Flags().Bool("tree", false, "Print an outline of the reflection tree")
	DecodeCmd.Flags().Int("depth", 3, "Outline depth (0 for unlimited)")
	DecodeCmd.Flags().Bool("graph", false, "Print the cross reference graph instead of the summary (json unless --format is set)")
	addDecodeFlags(DecodeCmd)
}

// addDecodeFlags adds the flags shared by every command that decodes.
func addDecodeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("lenient", false, "Drop undeclared fields instead of failing")
	cmd.Flags().Bool("no-envelope", false, "Skip the project envelope schema check")
}

func runDecode(cmd *cobra.Command, args []string) error {
	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := decodeFile(commandContext(cmd), args[0], optionsFromConfig(cmd, cfg))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), formatError(err))
		return ErrReported
	}

	out := cmd.OutOrStdout()
	if graph, _ := cmd.Flags().GetBool("graph"); graph {
		if format == display.FormatText {
			format = display.FormatJSON
		}
		data, err := display.Marshal(format, res.Index.Graph())
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	if format != display.FormatText {
		data, err := display.Marshal(format, res.Summary)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	v := verbosity(cmd)
	printSummary(out, res.Summary, v)

	if tree, _ := cmd.Flags().GetBool("tree"); tree || logger.ShouldOutput(v, logger.OutputTreeDump) {
		depth, _ := cmd.Flags().GetInt("depth")
		if logger.ShouldOutput(v, logger.OutputTreeDump) {
			depth = 0
		}
		outline, err := renderTree(res.Project, depth)
		if err != nil {
			return errors.Wrap(err, "failed to render tree")
		}
		fmt.Fprintln(out, outline)
	}
	return nil
}

func printSummary(out io.Writer, s Summary, v int) {
	fmt.Fprintf(out, "%s %s (%s): %d nodes, %d cross references\n",
		pterm.Green("✓"), pterm.Bold.Sprint(s.Root), s.File, s.Nodes, s.Edges)

	if logger.ShouldOutput(v, logger.OutputKindCounts) {
		for _, kind := range sortedKinds(s.Kinds) {
			fmt.Fprintf(out, "  %-22s %d\n", kind, s.Kinds[kind])
		}
	}

	if n := len(s.Dangling); n > 0 {
		fmt.Fprintf(out, "%s %d unresolved cross references\n", pterm.Yellow("!"), n)
		if logger.ShouldOutput(v, logger.OutputDangling) {
			for _, d := range s.Dangling {
				fmt.Fprintf(out, "  #%d %s -> #%d %s\n", d.From, d.Kind, d.To, d.Name)
			}
		}
	}
	if n := len(s.Duplicates); n > 0 {
		fmt.Fprintf(out, "%s %d duplicate ids: %v\n", pterm.Yellow("!"), n, s.Duplicates)
	}

	if logger.ShouldOutput(v, logger.OutputTiming) {
		fmt.Fprintf(out, "  decoded in %dms (run %s)\n", s.DurationMS, s.RunID)
	}
}

// renderTree outlines the reflection tree. depth 0 renders every level.
func renderTree(root typedoc.Reflection, depth int) (string, error) {
	return pterm.DefaultTree.WithRoot(treeNode(root, depth, 0)).Srender()
}

func treeNode(r typedoc.Reflection, maxDepth, depth int) pterm.TreeNode {
	n := r.Node()
	node := pterm.TreeNode{
		Text: fmt.Sprintf("%s %s %s", pterm.LightCyan(n.Kind.Serialized()), n.Name, pterm.Gray("#"+strconv.Itoa(n.ID))),
	}
	children := typedoc.Children(r)
	if maxDepth > 0 && depth+1 >= maxDepth {
		if len(children) > 0 {
			node.Children = []pterm.TreeNode{{Text: pterm.Gray(fmt.Sprintf("… %d more", len(children)))}}
		}
		return node
	}
	for _, c := range children {
		node.Children = append(node.Children, treeNode(c, maxDepth, depth+1))
	}
	return node
}
