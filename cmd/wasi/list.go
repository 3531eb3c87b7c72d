package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi/pkg/core"
)

var (
	listJSON  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List taught topics",
	Long:  `List the user-contributed topics in the knowledge base, in the order they were first taught.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(cmd)
		defer store.Close()

		k := store.Snapshot()
		if listMatch != "" {
			var err error
			if k, err = store.Filter(listMatch); err != nil {
				fatal("Invalid --match pattern", err)
			}
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(k); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		k.Range(func(key string, e core.Entry) bool {
			title := ""
			if e.Title != "" {
				title = fmt.Sprintf("- %s", e.Title)
			}
			fmt.Printf("%s %s\n", key, title)
			return true
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only topics matching a glob pattern (e.g. 'react*')")
}
