package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi/pkg/adapters/fs"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import topics from a JSON or YAML file",
	Long:  `Merge the topics of an exported file into the knowledge base. Existing topics are replaced.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		ext := strings.ToLower(filepath.Ext(path))
		serializer, ok := fs.DefaultSerializers()[ext]
		if !ok {
			fatal("Unsupported file", fmt.Errorf("no serializer for extension %q", ext))
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fatal("Failed to read file", err)
		}
		k, err := serializer.Parse(bytes.NewReader(data))
		if err != nil {
			fatal("Failed to parse file", err)
		}

		store := openStore(cmd)
		defer store.Close()

		n, err := store.Import(context.Background(), k)
		if err != nil {
			fatal("Failed to import", err)
		}
		fmt.Printf("Imported %d topics (%d total).\n", n, store.Len())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
