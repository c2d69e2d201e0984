package core

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

var exportLockTimeout = 5 * time.Second

// ExportPage writes html to <outputDir>/index.html plus a gzip copy, and
// returns the path of index.html. Concurrent exports into the same
// directory are serialised with a file lock kept beside the directory, so
// nothing but the page lands in the hosted tree.
func ExportPage(ctx context.Context, config Config, html []byte) (string, error) {
	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	fileLock, err := acquireExportLock(ctx, config.OutputDir)
	if err != nil {
		return "", err
	}
	defer fileLock.Unlock()

	htmlPath := filepath.Join(config.OutputDir, "index.html")
	if err := writeFileAtomic(htmlPath, html); err != nil {
		return "", err
	}

	if err := writeGzip(htmlPath+".gz", html); err != nil {
		return "", err
	}

	return htmlPath, nil
}

func acquireExportLock(ctx context.Context, dir string) (*flock.Flock, error) {
	fileLock := flock.New(exportLockPath(dir))

	lockCtx := ctx
	if _, hasTimeout := ctx.Deadline(); !hasTimeout {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, exportLockTimeout)
		defer cancel()
	}

	locked, err := fileLock.TryLockContext(lockCtx, 10*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("export lock on %s not acquired: %w", dir, err)
		}
		return nil, fmt.Errorf("failed to acquire export lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("export lock on %s not acquired", dir)
	}
	return fileLock, nil
}

func exportLockPath(dir string) string {
	return filepath.Clean(dir) + ".lock"
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("gzip %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("gzip %s: %w", path, err)
	}
	return nil
}
