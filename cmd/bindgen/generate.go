package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sagudev/fp-bindgen/codegen"
)

var generateCmd = &cobra.Command{
	Use:   "generate <document>",
	Short: "Generate bindings from a protocol document",
	Long: `Generate bindings for every target the document requests.

Output is deterministic: the same document always produces byte-identical
files, so generated sources can be committed and diffed.`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("out", "o", ".", "Output directory")
	generateCmd.Flags().StringSlice("target", nil, "Override document targets (repeatable)")
	generateCmd.Flags().String("module", "", "Override the output module name")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	m, err := loadModel(cmd, args[0])
	if err != nil {
		fatal(err)
	}

	files, err := codegen.Generate(m)
	if err != nil {
		fatal(err)
	}

	outDir, _ := cmd.Flags().GetString("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fatal(err)
	}
	for _, f := range files {
		path := filepath.Join(outDir, f.Path)
		if err := os.WriteFile(path, f.Contents, 0o644); err != nil {
			fatal(err)
		}
		fmt.Println(path)
	}
}
