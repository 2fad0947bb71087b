package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Show the resolved type graph and call surface of a document",
	Long: `Resolve a protocol document and print what generation would see:
every reachable type node with its encoding plan, and every declared
function. With -i, browse the graph in an interactive terminal UI.`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolP("interactive", "i", false, "Browse the graph interactively")
	inspectCmd.Flags().StringSlice("target", nil, "Override document targets (repeatable)")
	inspectCmd.Flags().String("module", "", "Override the output module name")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	m, err := loadModel(cmd, args[0])
	if err != nil {
		fatal(err)
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fatal(fmt.Errorf("interactive mode needs a terminal"))
		}
		if err := runInteractive(args[0], m); err != nil {
			fatal(err)
		}
		return
	}

	fmt.Printf("Protocol: %s\n", m.Proto.Name())
	fmt.Printf("Targets:  %s\n", strings.Join(m.Config.Targets, ", "))
	if len(m.Config.Features) > 0 {
		fmt.Printf("Features: %s\n", strings.Join(m.Config.Features, ", "))
	}

	fmt.Printf("\nTypes (%d reachable):\n", m.Graph.Len())
	for _, node := range m.Graph.Nodes() {
		plan, _ := m.Plans.For(node.Name())
		fmt.Printf("  %-10s %-30s %s\n", node.Kind, node.Name(), plan)
	}

	fns := m.Graph.Functions()
	fmt.Printf("\nFunctions (%d):\n", len(fns))
	for _, fn := range fns {
		fmt.Printf("  %s\n", formatFunction(fn))
	}
}

func formatFunction(fn protocol.Function) string {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Name+": "+p.Type.String())
	}
	sig := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(params, ", "))
	if fn.Ret.Name != types.KindUnit.String() {
		sig += " -> " + fn.Ret.String()
	}
	tag := fn.Direction.String()
	if fn.Async {
		tag += ", async"
	}
	return sig + " [" + tag + "]"
}

func formatNodeDetail(m *codegen.Model, node types.Type) string {
	var b strings.Builder
	plan, _ := m.Plans.For(node.Name())
	fmt.Fprintf(&b, "kind: %s\nplan: %s\n", node.Kind, plan)

	switch node.Kind {
	case types.KindStruct:
		b.WriteString("fields:\n")
		for _, f := range node.Fields {
			fmt.Fprintf(&b, "  %s: %s", f.Name, f.Type)
			if f.Default != "" {
				fmt.Fprintf(&b, " = %s", f.Default)
			}
			b.WriteByte('\n')
		}
	case types.KindEnum:
		b.WriteString("variants:\n")
		for _, v := range node.Variants {
			fmt.Fprintf(&b, "  %s (%s)", v.Name, v.Kind)
			for _, p := range v.Tuple {
				fmt.Fprintf(&b, " %s", p)
			}
			for _, f := range v.Fields {
				fmt.Fprintf(&b, " %s:%s", f.Name, f.Type)
			}
			b.WriteByte('\n')
		}
	case types.KindAlias:
		fmt.Fprintf(&b, "of: %s\n", node.Elem)
	case types.KindList, types.KindOption, types.KindIndirect:
		fmt.Fprintf(&b, "element: %s\n", node.Elem)
	case types.KindMap:
		fmt.Fprintf(&b, "key: %s\nvalue: %s\n", node.Key, node.Value)
	case types.KindResult:
		fmt.Fprintf(&b, "ok: %s\nerr: %s\n", node.Ok, node.Err)
	}
	return b.String()
}
