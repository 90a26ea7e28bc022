package main

import (
	"fmt"
	"os"

	"github.com/aretw0/slidedeck/internal/cli"
	"github.com/spf13/cobra"
)

// presentCmd represents the present command
var presentCmd = &cobra.Command{
	Use:   "present [dir]",
	Short: "Present the deck in the terminal",
	Long: `Shows the deck full-screen in the terminal.

Keys: →/↓/Space/PageDown next, ←/↑/PageUp previous, Home/End first/last,
f fullscreen, Esc leave fullscreen, q quit.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		watch, _ := cmd.Flags().GetBool("watch")
		headless, _ := cmd.Flags().GetBool("headless")
		width, _ := cmd.Flags().GetInt("width")

		if watch && headless {
			fmt.Println("Error: --watch and --headless cannot be used together.")
			os.Exit(1)
		}

		err := cli.RunPresent(cli.PresentOptions{
			DeckOptions: deckOptions(cmd, args),
			SessionID:   sessionID,
			Fresh:       fresh,
			Watch:       watch,
			Headless:    headless,
			Width:       width,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(presentCmd)

	presentCmd.Flags().String("session", "", "Session ID used to resume the position (defaults to one per deck)")
	presentCmd.Flags().Bool("fresh", false, "Start from the first slide, forgetting the stored position")
	presentCmd.Flags().BoolP("watch", "w", false, "Reload the deck when its files change")
	presentCmd.Flags().Bool("headless", false, "Plain output, no raw mode (keys read from stdin)")
	presentCmd.Flags().Int("width", 0, "Render width (defaults to the terminal width)")

	// 'present' is the default command.
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.Run = presentCmd.Run
	rootCmd.Flags().AddFlagSet(presentCmd.Flags())
}
