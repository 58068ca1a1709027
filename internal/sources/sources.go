// Package sources gathers knols from local directories and git repositories.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/knolpack/internal/domain"
	"github.com/conorfennell/knolpack/internal/gitsource"
	"github.com/conorfennell/knolpack/internal/parser"
)

// Collect reads the knols of every source in order. A source is a markdown file, a
// directory walked for ".md" files, or a git URL checked out under reposDir.
//
// A failing source or file is logged and skipped. The knols that could be read are
// always returned, with the failures joined into the error.
func Collect(ctx context.Context, sources []string, reposDir string) ([]domain.Knol, error) {
	slog.Info("collecting knols", "sources", len(sources))

	var knols []domain.Knol
	var errs []error
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return knols, err
		}

		path, err := localize(ctx, source, reposDir)
		if err != nil {
			slog.Error("error syncing source", "source", source, "error", err)
			errs = append(errs, err)
			continue
		}

		found, err := collectPath(path)
		if err != nil {
			errs = append(errs, err)
		}
		slog.Info("source collected", "source", source, "knols", len(found))
		knols = append(knols, found...)
	}
	return knols, errors.Join(errs...)
}

// localize returns the local path for source, syncing it first when it is a git URL.
func localize(ctx context.Context, source, reposDir string) (string, error) {
	if !gitsource.IsRemote(source) {
		return source, nil
	}

	localPath, err := gitsource.LocalPath(reposDir, source)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create repos directory: %w", err)
	}
	if err := gitsource.Sync(ctx, source, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}

func collectPath(root string) ([]domain.Knol, error) {
	var knols []domain.Knol
	var errs []error

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		fileKnols, err := parser.ParseFile(path)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			errs = append(errs, err)
			return nil
		}
		knols = append(knols, fileKnols...)
		return nil
	})
	if walkErr != nil {
		slog.Error("error walking directory", "path", root, "error", walkErr)
		errs = append(errs, fmt.Errorf("failed to walk %s: %w", root, walkErr))
	}
	return knols, errors.Join(errs...)
}
