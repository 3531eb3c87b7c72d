package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wasi",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wasi version %s\n", strings.TrimSpace(wasi.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
