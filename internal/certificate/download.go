package certificate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Downloader saves certificates to a directory, one export at a time.
type Downloader struct {
	mu          sync.Mutex
	downloading bool
	dir         string
	exporter    Exporter
	logger      *slog.Logger
}

// NewDownloader creates a Downloader writing into dir. A nil logger uses
// slog.Default.
func NewDownloader(dir string, exp Exporter, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{dir: dir, exporter: exp, logger: logger}
}

// Downloading reports whether an export is in progress.
func (d *Downloader) Downloading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.downloading
}

// Download renders req into FileName inside the configured directory and
// returns the written path. A concurrent call fails with ErrBusy. On failure
// the partial file is removed, the busy flag is cleared and the error is
// logged and returned.
func (d *Downloader) Download(ctx context.Context, req Request) (path string, err error) {
	d.mu.Lock()
	if d.downloading {
		d.mu.Unlock()
		return "", ErrBusy
	}
	d.downloading = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.downloading = false
		d.mu.Unlock()
		if err != nil {
			d.logger.Error("certificate export failed", "error", err)
		}
	}()

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create certificate dir: %w", err)
	}

	path = filepath.Join(d.dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create certificate file: %w", err)
	}

	if err := d.exporter.Export(ctx, req, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close certificate file: %w", err)
	}

	d.logger.Info("certificate saved", "path", path, "serial", req.Serial)
	return path, nil
}
