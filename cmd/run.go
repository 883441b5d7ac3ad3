package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/app"
	"github.com/kellen/chronos/internal/certificate"
	"github.com/kellen/chronos/internal/config"
)

// runApp builds dependencies and launches the TUI. The terminal belongs to
// the TUI, so logs go to a file.
func runApp(cmd *cobra.Command) error {
	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logFile, err := config.OpenLog(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile, cfg.LogLevel)

	d, err := buildDeps(cmd, logger)
	if err != nil {
		return err
	}
	defer d.close()

	if d.opener == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "No model credential configured; the historian will be unavailable.")
	}

	return app.Run(app.Options{
		Machine:      d.machine,
		Catalog:      d.catalog,
		Opener:       d.opener,
		Prefs:        d.prefs,
		Events:       d.events,
		Downloader:   certificate.NewDownloader(cfg.CertificateDirOrDefault(), certificate.PDFExporter{}, logger),
		QuizDuration: cfg.QuizDuration,
		Logger:       logger,
	})
}
