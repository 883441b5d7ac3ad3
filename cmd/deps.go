package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/llm"
	"github.com/kellen/chronos/internal/prefs"
	"github.com/kellen/chronos/internal/store"
)

// deps are the collaborators shared by the TUI and the HTTP server.
type deps struct {
	store   *store.Store // nil when ephemeral
	prefs   prefs.Store
	events  store.EventRepo
	catalog *catalog.Catalog
	machine *appstate.Machine
	opener  llm.Opener // nil when no credential is configured
}

// buildDeps opens storage (unless --ephemeral), loads the catalog, restores
// the app state and builds the model opener.
func buildDeps(cmd *cobra.Command, logger *slog.Logger) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d := &deps{}
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		d.prefs = prefs.NewMemory()
	} else {
		st, err := openStore(cmd)
		if err != nil {
			return nil, err
		}
		d.store = st
		d.prefs = st.Preferences()
		d.events = st.EventRepo()
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	d.catalog = cat
	d.machine = appstate.Load(ctx, d.prefs, cat)

	llmCfg, err := cfg.LLM.Resolve()
	switch {
	case errors.Is(err, llm.ErrNoCredentials):
		logger.Warn("no model credential configured; chat runs degraded", "error", err)
	case err != nil:
		d.close()
		return nil, err
	default:
		opener, err := llm.NewOpener(ctx, llmCfg, d.events, logger)
		if err != nil {
			logger.Error("model provider unavailable; chat runs degraded", "error", err)
		} else {
			d.opener = opener
		}
	}
	return d, nil
}

func (d *deps) close() {
	if d.store != nil {
		d.store.Close()
	}
}
