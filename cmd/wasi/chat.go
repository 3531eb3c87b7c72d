package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	sessionevents "github.com/aretw0/wasi/pkg/adapters/lifecycle"
	"github.com/aretw0/wasi/pkg/core"
)

const chatHelp = `Commands:
  /learn <topic>: <description>   teach a topic
  /suggest                        show suggested questions
  /count                          show how many topics were taught
  /help                           show this help
  /quit                           leave the chat
Anything else is a question.`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s := openSession(cmd)
		defer closeSession(s)

		for _, m := range s.Messages() {
			printReply(os.Stdout, m)
		}
		fmt.Println()
		fmt.Println(chatHelp)

		source := sessionevents.NewSource(s, 0)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to watch session", err)
		}
		lifecycle.Go(ctx, func(ctx context.Context) error {
			for e := range source.Events() {
				if ev, ok := e.(core.Event); ok {
					printStatus(os.Stderr, s, ev)
				}
			}
			return nil
		})

		lines := readLines(ctx, os.Stdin)
		for {
			fmt.Print("\n> ")
			var line string
			select {
			case <-ctx.Done():
				fmt.Println()
				return
			case l, ok := <-lines:
				if !ok {
					fmt.Println()
					return
				}
				line = strings.TrimSpace(l)
			}

			if done := handleLine(ctx, s, line); done {
				return
			}
		}
	},
}

// handleLine runs one chat line. It reports whether the chat should end.
func handleLine(ctx context.Context, s *core.Session, line string) bool {
	switch {
	case line == "":
		return false
	case line == "/quit" || line == "/exit":
		return true
	case line == "/help":
		fmt.Println(chatHelp)
	case line == "/count":
		fmt.Printf("User-contributed topics: %d\n", s.KnowledgeCount())
	case line == "/suggest":
		for _, q := range s.Suggestions() {
			fmt.Println(" -", q)
		}
	case strings.HasPrefix(line, "/learn"):
		topic, desc, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "/learn")), ":")
		if !ok {
			fmt.Println("Usage: /learn <topic>: <description>")
			return false
		}
		confirm, err := s.SubmitKnowledge(ctx, core.Contribution{Topic: topic, Description: strings.TrimSpace(desc)})
		return showResult(confirm, err)
	default:
		reply, err := s.SubmitQuery(ctx, line)
		return showResult(reply, err)
	}
	return false
}

func showResult(m core.Message, err error) bool {
	switch {
	case err == nil:
		fmt.Println()
		printReply(os.Stdout, m)
	case errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, core.ErrInvalidContribution):
		fmt.Println(err)
	case errors.Is(err, core.ErrBusy):
		fmt.Println("Still working on the previous request.")
	case m.ID != 0:
		// The session already logged the failure and produced the error message.
		fmt.Println()
		printReply(os.Stdout, m)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return false
}

// printStatus shows what the assistant is doing while a request is in flight.
func printStatus(w io.Writer, s *core.Session, e core.Event) {
	if e.Type != core.EventStatus {
		return
	}
	switch e.Status {
	case core.StatusProcessing, core.StatusLearning:
		fmt.Fprintf(w, "[%s] %s\n", e.Status, s.Activity())
	case core.StatusError:
		fmt.Fprintf(w, "[%s] recalibrating...\n", e.Status)
	}
}

// readLines feeds stdin lines into a channel so the loop can also watch ctx.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})
	return out
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
