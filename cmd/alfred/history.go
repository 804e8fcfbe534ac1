package main

import (
	"fmt"
	"time"

	"github.com/rahul/alfred/internal/store"
	"github.com/rahul/alfred/pkg/config"
	"github.com/spf13/cobra"
)

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	chatID, _ := cmd.Flags().GetString("chat")
	if chatID == "" {
		chatID = cfg.App.ChatID
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	db, err := store.Open(cmd.Context(), cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	messages, err := db.GetHistory(cmd.Context(), chatID, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(messages) == 0 {
		fmt.Fprintf(out, "No messages for chat %s\n", chatID)
		return nil
	}
	for _, m := range messages {
		fmt.Fprintf(out, "[%s] %-5s %s\n", m.Timestamp.Local().Format(time.DateTime), m.Role, m.Content)
	}
	return nil
}
