package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi"
	"github.com/aretw0/wasi/pkg/core"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long:  `Ask a JavaScript or React question. Taught topics are checked before built-in ones.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, wasi.WithSessionOptions(core.WithGreeting(false)))
		defer closeSession(s)

		reply, err := s.SubmitQuery(context.Background(), strings.Join(args, " "))
		if err != nil && !errors.Is(err, core.ErrReplyFailed) {
			fatal("Failed to ask", err)
		}
		printReply(os.Stdout, reply)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
