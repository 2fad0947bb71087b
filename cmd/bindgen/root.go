package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagudev/fp-bindgen/codegen"
	_ "github.com/sagudev/fp-bindgen/codegen/gohost"
	_ "github.com/sagudev/fp-bindgen/codegen/goplugin"
	"github.com/sagudev/fp-bindgen/project"
)

var rootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "Bindings generator for sandboxed WASM plugin protocols",
	Long: `bindgen - Generate call bindings between a host and its WASM plugins.

A protocol document declares the types and functions crossing the
host/plugin boundary. bindgen turns it into matched source files for
each side, so neither is written by hand and neither can drift.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadModel resolves a document file into a generation model, applying
// command-line overrides on the way.
func loadModel(cmd *cobra.Command, path string) (*codegen.Model, error) {
	doc, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	proto, cfg, err := doc.Build()
	if err != nil {
		return nil, err
	}

	if targets, _ := cmd.Flags().GetStringSlice("target"); len(targets) > 0 {
		cfg.Targets = targets
	}
	if module, _ := cmd.Flags().GetString("module"); module != "" {
		cfg.ModuleName = module
	}

	return codegen.NewModel(proto, cfg)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
