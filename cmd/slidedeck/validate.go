package main

import (
	"fmt"
	"os"

	"github.com/aretw0/slidedeck/pkg/deck"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the deck for consistency",
	Long:  `Loads the deck and reports unreadable slides, unknown activation hooks and broken hook commands.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(deckOptions(cmd, args).Dir); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Deck is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(dir string) error {
	d, err := deck.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load deck: %w", err)
	}
	issues := d.Validate()
	for _, issue := range issues {
		fmt.Println(" -", issue)
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d issue(s) in %d slide(s)", len(issues), len(d.Slides))
	}
	fmt.Printf("%d slides, %d hooks\n", len(d.Slides), len(d.Hooks))
	return nil
}
