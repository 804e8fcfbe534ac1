package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rahul/alfred/internal/agent"
	"github.com/rahul/alfred/internal/dispatch"
	"github.com/rahul/alfred/internal/gateway"
	"github.com/rahul/alfred/internal/governance"
	"github.com/rahul/alfred/internal/observability"
	"github.com/rahul/alfred/internal/store"
	"github.com/rahul/alfred/internal/tools"
	"github.com/rahul/alfred/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(observability.Options{Path: cfg.Log.Path, Level: level})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	registry := tools.NewTodoRegistry(db)

	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		return errors.New("no enabled provider found in config")
	}
	model, err := agent.NewModel(ctx, pName, pCfg)
	if err != nil {
		return err
	}

	systemPrompt, err := agent.NewPromptManager(cfg.App.Prompts, logger.Zap()).BuildSystemPrompt(registry)
	if err != nil {
		return err
	}

	policy, err := governance.NewPolicyEngine(cfg.Policy.DenyActions, cfg.Policy.DenyPatterns, cfg.Policy.MaxCascade)
	if err != nil {
		return err
	}

	status := observability.NewStatus()
	butler := agent.NewLLMAgent(model, systemPrompt, agent.CallOptions(cfg.Generation)...)
	d := dispatch.NewDispatcher(butler, registry, policy, db, logger)
	d.Status = status

	colored := observability.IsTerminal(os.Stdout)
	console := gateway.NewConsoleGateway(d, cfg.App.ChatID, os.Stdin, os.Stdout, colored)
	console.Status = status

	var tg *gateway.TelegramGateway
	if tgCfg, ok := cfg.GetTelegramConfig(); ok {
		tg, err = gateway.NewTelegramGateway(tgCfg.Token, d, logger.Zap())
		if err != nil {
			return err
		}
	}

	logger.Zap().Info("alfred started",
		zap.String("provider", pName),
		zap.String("model", pCfg.Model),
		zap.String("store", cfg.Store.Path),
		zap.Bool("telegram", tg != nil))

	observability.PrintBanner(os.Stdout, colored)

	// Leaving the console ends the session for every gateway.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return console.Start(gctx)
	})
	if tg != nil {
		g.Go(func() error {
			return tg.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
