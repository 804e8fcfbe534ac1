package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// rootCmd starts the interactive chat.
var rootCmd = &cobra.Command{
	Use:   "alfred",
	Short: "Alfred - your punctual to-do butler",
	Long: `Alfred keeps a todo list in a local SQLite file and talks to you about it.

Tell it what you need to do, ask for the list, or mention that something is
done and it will be crossed off. Type "exit" to leave.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

// historyCmd prints the stored transcript of a chat.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the conversation transcript",
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	historyCmd.Flags().String("chat", "", "Chat id (defaults to app.chat_id)")
	historyCmd.Flags().Int("limit", 20, "Number of messages to show")

	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
