package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi/pkg/adapters/fs"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export taught topics",
	Long:  `Write the user-contributed knowledge as JSON or YAML, to stdout or a file.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		serializer, ok := fs.DefaultSerializers()["."+exportFormat]
		if !ok {
			fatal("Unsupported format", fmt.Errorf("%q (want json or yaml)", exportFormat))
		}

		store := openStore(cmd)
		defer store.Close()

		data, err := serializer.Serialize(store.Snapshot())
		if err != nil {
			fatal("Failed to serialize knowledge", err)
		}

		if exportOutput == "" || exportOutput == "-" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			fatal("Failed to write export", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d topics to %s\n", store.Len(), exportOutput)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
}
