package main

import (
	"fmt"
	"os"

	"github.com/aretw0/slidedeck/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slidedeck",
	Short: "slidedeck presents Markdown slide decks",
	Long:  `slidedeck turns a directory of Markdown files into a presentation you can drive from the terminal, over HTTP or through MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the deck")
	rootCmd.PersistentFlags().Bool("debug", false, "Log to stderr at debug level")
	rootCmd.PersistentFlags().String("log-format", "text", "Debug log format: 'text' or 'json'")
	rootCmd.PersistentFlags().Duration("settle-delay", 0, "Override the transition lock duration (e.g. 500ms)")
	rootCmd.PersistentFlags().Duration("activation-delay", 0, "Override the delay before a slide activates (e.g. 100ms)")
	rootCmd.PersistentFlags().Float64("swipe-threshold", 0, "Override the minimum swipe distance")
}

// deckOptions reads the persistent flags. A positional argument names the
// deck directory unless --dir was given.
func deckOptions(cmd *cobra.Command, args []string) cli.DeckOptions {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logFormat, _ := cmd.Flags().GetString("log-format")
	settle, _ := cmd.Flags().GetDuration("settle-delay")
	activation, _ := cmd.Flags().GetDuration("activation-delay")
	swipe, _ := cmd.Flags().GetFloat64("swipe-threshold")
	return cli.DeckOptions{
		Dir:             dir,
		Debug:           debug,
		LogFormat:       logFormat,
		SettleDelay:     settle,
		ActivationDelay: activation,
		SwipeThreshold:  swipe,
	}
}
