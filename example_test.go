package wasi_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/wasi"
	"github.com/aretw0/wasi/pkg/core"
)

// Example_basic demonstrates how to open a session and ask a question.
func Example_basic() {
	// The memory adapter keeps the example self-contained.
	s, err := wasi.New("",
		wasi.WithAdapter(wasi.AdapterMemory),
		wasi.WithInstantReplies(),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	reply, err := s.SubmitQuery(context.Background(), "How do JavaScript arrays work?")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(reply.Title)
	fmt.Println(reply.URL)
	// Output:
	// JavaScript Array Documentation
	// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Array
}

// Example_learn demonstrates that contributed knowledge answers later queries.
func Example_learn() {
	s, err := wasi.New("",
		wasi.WithAdapter(wasi.AdapterMemory),
		wasi.WithInstantReplies(),
		wasi.WithSessionOptions(core.WithGreeting(false)),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	_, err = s.SubmitKnowledge(ctx, wasi.Contribution{
		Topic:       "Closures",
		Description: "A closure keeps access to the scope it was created in.",
		URL:         "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Closures",
	})
	if err != nil {
		log.Fatal(err)
	}

	reply, err := s.SubmitQuery(ctx, "closures")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(reply.Title)
	fmt.Println(reply.UserContributed)
	fmt.Println(len(s.Messages()))
	// Output:
	// User Resource: Closures
	// true
	// 3
}
