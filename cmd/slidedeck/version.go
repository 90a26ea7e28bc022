package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/slidedeck"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of slidedeck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slidedeck version %s\n", strings.TrimSpace(slidedeck.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
