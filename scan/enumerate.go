// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/ssearch/core"
)

// Enumerate lists the regular files in dir as candidates.
// Without recursive, only files directly inside dir are listed.
// Symlinks count when they resolve to a regular file. A missing or
// unreadable root is an error; unreadable subdirectories are skipped.
// Candidates come back in lexical path order.
func Enumerate(ctx context.Context, dir string, recursive bool) ([]core.Candidate, error) {
	return EnumerateWithLogger(ctx, dir, recursive, slog.Default())
}

// EnumerateWithLogger is Enumerate with an explicit logger for skip warnings.
func EnumerateWithLogger(ctx context.Context, dir string, recursive bool, logger *slog.Logger) ([]core.Candidate, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("enumerate %s: %w", dir, ErrNotDirectory)
	}

	if recursive {
		return walk(ctx, dir, logger)
	}
	return list(ctx, dir)
}

func list(ctx context.Context, dir string) ([]core.Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}

	candidates := make([]core.Candidate, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, entry.Name())
		if isRegularFile(path, entry) {
			candidates = append(candidates, newCandidate(path))
		}
	}
	return candidates, nil
}

func walk(ctx context.Context, root string, logger *slog.Logger) ([]core.Candidate, error) {
	var candidates []core.Candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if isRegularFile(path, d) {
			candidates = append(candidates, newCandidate(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", root, err)
	}
	return candidates, nil
}

// isRegularFile reports whether path is, or links to, a regular file.
func isRegularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func newCandidate(path string) core.Candidate {
	return core.Candidate{
		Path: path,
		Name: filepath.Base(path),
	}
}
