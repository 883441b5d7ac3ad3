package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
)

var erasCmd = &cobra.Command{
	Use:   "eras",
	Short: "List the eras in the catalog (optionally fuzzy-filtered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("lang")
		query, _ := cmd.Flags().GetString("search")

		lang, err := i18n.Parse(code)
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		eras := cat.Search(query, lang)
		if len(eras) == 0 {
			return fmt.Errorf("no eras match %q", query)
		}

		// Header.
		fmt.Printf("%-24s  %-32s  %s\n", "ID", "Title", "Period")
		fmt.Println(strings.Repeat("─", 80))

		for _, e := range eras {
			title := e.Title.Get(lang)
			if len([]rune(title)) > 32 {
				title = string([]rune(title)[:29]) + "..."
			}
			fmt.Printf("%-24s  %-32s  %s\n", e.ID, title, e.Period.Get(lang))
		}

		fmt.Printf("\n%d eras, %d quiz questions (catalog %s)\n",
			len(eras), len(cat.Questions()), cat.Version())
		return nil
	},
}

func init() {
	erasCmd.Flags().String("lang", string(i18n.Default), "Display language code (e.g. en, fr, rw)")
	erasCmd.Flags().StringP("search", "s", "", "Fuzzy filter on the era title")
}
