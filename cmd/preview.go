package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/chat"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/llm"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Talk to the historian in plain text (no database)",
	Long: `Open a one-off conversation with the historian on stdin/stdout.

This is a stateless developer tool: no database, no saved state, no events.
Useful for checking a provider configuration or the era introductions.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("era", "", "Era id to introduce first (see 'chronos eras')")
	previewCmd.Flags().String("lang", string(i18n.Default), "Language used for the era title")
}

func runPreview(cmd *cobra.Command, args []string) error {
	eraID, _ := cmd.Flags().GetString("era")
	code, _ := cmd.Flags().GetString("lang")

	lang, err := i18n.Parse(code)
	if err != nil {
		return err
	}

	var era *catalog.Era
	if eraID != "" {
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		e, ok := cat.Era(eraID)
		if !ok {
			return fmt.Errorf("no era found for %q", eraID)
		}
		era = &e
	}

	// Create the opener without an EventRepo, so nothing is recorded.
	ctx := context.Background()
	llmCfg, err := cfg.LLM.Resolve()
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	opener, err := llm.NewOpener(ctx, llmCfg, nil, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	sess := chat.New(opener)
	sess.Initialize(ctx)
	defer sess.Close()

	printLast(sess)

	if ex, err := sess.BeginAutoPrompt(era, lang); err != nil {
		return err
	} else if ex != nil {
		fmt.Printf("\n> %s\n\n", ex.Message)
		sess.Complete(ex.Run(ctx))
		printLast(sess)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := sess.Send(ctx, text); err != nil {
			return err
		}
		fmt.Println()
		printLast(sess)
	}
}

func printLast(sess *chat.Session) {
	h := sess.History()
	if len(h) == 0 {
		return
	}
	fmt.Println(h[len(h)-1].Content)
}
