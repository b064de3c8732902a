package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	erasureUseCase "github.com/allisson/phiguard/internal/erasure/usecase"
	"github.com/allisson/phiguard/internal/gate"
)

// maxConcurrentErasures bounds parallel file destruction so a long target
// list does not exhaust file descriptors or IO bandwidth.
const maxConcurrentErasures = 4

// eraseResult is the per-file outcome reported by RunEraseFiles.
type eraseResult struct {
	Path     string `json:"path"`
	RecordID string `json:"record_id,omitempty"`
	Passes   int    `json:"passes_completed"`
	Verified bool   `json:"verification_passed"`
	Error    string `json:"error,omitempty"`
}

// RunEraseFiles securely destroys one or more files and reports per-file
// outcomes. Files are erased concurrently with a bounded worker pool; each
// file gets its own deletion record and audit event through the use case,
// success or not.
//
// A precondition failure (missing file, symlink, directory) is reported per
// file but does not abort the remaining targets. The command fails when any
// target failed.
func RunEraseFiles(
	ctx context.Context,
	useCase erasureUseCase.ErasureUseCase,
	logger *slog.Logger,
	w io.Writer,
	actor gate.Actor,
	paths []string,
	method string,
	justification string,
	format string,
) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one path is required")
	}

	parsedMethod, err := erasureDomain.ParseMethod(method)
	if err != nil {
		return fmt.Errorf("invalid erasure method: %w", err)
	}

	var (
		mu      sync.Mutex
		results []eraseResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentErasures)

	for _, path := range paths {
		g.Go(func() error {
			record, eraseErr := useCase.Erase(gctx, actor, &erasureDomain.EraseInput{
				Path:          path,
				Method:        parsedMethod,
				Justification: justification,
			})

			result := eraseResult{Path: path}
			if record != nil {
				result.RecordID = record.ID.String()
				result.Passes = record.PassesCompleted
				result.Verified = record.VerificationPassed
			}
			if eraseErr != nil {
				result.Error = eraseErr.Error()
				if erasureUseCase.IsPrecondition(eraseErr) {
					logger.Warn("target not erasable",
						slog.String("path", path),
						slog.Any("error", eraseErr))
				} else {
					logger.Error("erase failed",
						slog.String("path", path),
						slog.Any("error", eraseErr))
				}
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			// Per-file failures are collected, not propagated: one bad target
			// must not cancel the siblings.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	if format == "json" {
		jsonBytes, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(jsonBytes))
	} else {
		for _, r := range results {
			if r.Error != "" {
				fmt.Fprintf(w, "FAILED  %s: %s\n", r.Path, r.Error)
				continue
			}
			fmt.Fprintf(w, "ERASED  %s (record %s, %d passes, verified=%t)\n",
				r.Path, r.RecordID, r.Passes, r.Verified)
		}
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to erase", failed, len(results))
	}

	return nil
}
