package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi"
	"github.com/aretw0/wasi/pkg/core"
)

var contribution core.Contribution

// learnCmd represents the learn command
var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Teach a topic",
	Long: `Store a topic in the knowledge base. Teaching an existing topic replaces it.
Use --description - to read the description from stdin.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if contribution.Description == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			contribution.Description = string(data)
		}
		if err := contribution.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			cmd.Usage()
			os.Exit(1)
		}

		s := openSession(cmd, wasi.WithSessionOptions(core.WithGreeting(false)))
		defer closeSession(s)

		confirm, err := s.SubmitKnowledge(context.Background(), contribution)
		if errors.Is(err, core.ErrReadOnly) {
			fatal("Knowledge base is read-only", err)
		}
		if err != nil {
			fatal("Failed to store topic", err)
		}
		printReply(os.Stdout, confirm)
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
	learnCmd.Flags().StringVarP(&contribution.Topic, "topic", "t", "", "Topic name")
	learnCmd.Flags().StringVarP(&contribution.Description, "description", "d", "", "Explanation of the topic")
	learnCmd.Flags().StringVarP(&contribution.Code, "code", "c", "", "Code example")
	learnCmd.Flags().StringVarP(&contribution.URL, "url", "u", "", "Reference link")
	learnCmd.Flags().StringVarP(&contribution.Personality, "personality", "p", "", "Remark shown with the answer")
	learnCmd.MarkFlagRequired("topic")
	learnCmd.MarkFlagRequired("description")
}
