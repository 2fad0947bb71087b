package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagudev/fp-bindgen/project"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the protocol document format",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := project.Schema()
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
