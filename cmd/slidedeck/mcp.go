package main

import (
	"log"
	"os"

	"github.com/aretw0/slidedeck/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [dir]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes deck navigation as MCP tools (deck_position, next_slide,
prev_slide, go_to_slide) so AI agents can drive a presentation.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		err := cli.RunMCP(sigCtx, cli.MCPOptions{
			DeckOptions: deckOptions(cmd, args),
			Transport:   transport,
			Port:        port,
		})
		if err != nil {
			log.Fatalf("MCP Server execution failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
