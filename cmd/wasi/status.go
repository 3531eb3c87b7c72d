package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi"
	"github.com/aretw0/wasi/pkg/core"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the knowledge base",
	Long:  `Print the introspection state of a fresh session and its store as JSON.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, wasi.WithSessionOptions(core.WithGreeting(false)))
		defer closeSession(s)

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.State()); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
