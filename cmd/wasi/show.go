package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi/pkg/core"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [topic]",
	Short: "Show a taught topic",
	Long:  `Show the stored entry of a topic. Built-in topics are not stored and are answered by 'ask'.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(cmd)
		defer store.Close()

		key := core.NormalizeKey(strings.Join(args, " "))
		e, ok := store.Get(key)
		if !ok {
			fmt.Fprintf(os.Stderr, "Topic %q not found\n", key)
			os.Exit(1)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(e); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		printReply(os.Stdout, core.Message{
			Text:            e.Text,
			URL:             e.URL,
			Title:           e.Title,
			Personality:     e.Personality,
			UserContributed: true,
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
