package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	erasureService "github.com/allisson/phiguard/internal/erasure/service"
	erasureUseCase "github.com/allisson/phiguard/internal/erasure/usecase"
	"github.com/allisson/phiguard/internal/gate"
)

// fakeDeletionRecordRepository collects created records in memory.
type fakeDeletionRecordRepository struct {
	mu      sync.Mutex
	records []*erasureDomain.DeletionRecord
}

func (f *fakeDeletionRecordRepository) Create(_ context.Context, record *erasureDomain.DeletionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeDeletionRecordRepository) List(
	_ context.Context, _ string, _, _ int,
) ([]*erasureDomain.DeletionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records, nil
}

// fakeAuditRecorder accepts every audit event.
type fakeAuditRecorder struct {
	mu     sync.Mutex
	inputs []*auditDomain.AuditEventInput
}

func (f *fakeAuditRecorder) Record(
	_ context.Context, input *auditDomain.AuditEventInput,
) (*auditDomain.AuditEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	return &auditDomain.AuditEvent{ID: uuid.Must(uuid.NewV7())}, nil
}

func writeTempFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("medical record, mrn 12345678"), 0o600))
	return path
}

func TestRunEraseFiles(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	actor := gate.Actor{ID: "cli-operator", OrganizationID: "org-1"}

	newUseCase := func() (erasureUseCase.ErasureUseCase, *fakeDeletionRecordRepository, *fakeAuditRecorder) {
		repo := &fakeDeletionRecordRepository{}
		recorder := &fakeAuditRecorder{}
		useCase := erasureUseCase.NewErasureUseCase(erasureService.NewFileShredder(cryptoService.NewHasher()), repo, recorder)
		return useCase, repo, recorder
	}

	t.Run("erases multiple files", func(t *testing.T) {
		useCase, repo, recorder := newUseCase()
		dir := t.TempDir()
		pathA := writeTempFile(t, dir, "a.txt")
		pathB := writeTempFile(t, dir, "b.txt")

		var out bytes.Buffer
		err := RunEraseFiles(context.Background(), useCase, logger, &out,
			actor, []string{pathA, pathB}, "overwrite3", "retention expired", "text")
		require.NoError(t, err)

		assert.NoFileExists(t, pathA)
		assert.NoFileExists(t, pathB)
		assert.Len(t, repo.records, 2)
		assert.Len(t, recorder.inputs, 2)
		assert.Contains(t, out.String(), "ERASED")
	})

	t.Run("missing file reported without aborting siblings", func(t *testing.T) {
		useCase, repo, _ := newUseCase()
		dir := t.TempDir()
		pathA := writeTempFile(t, dir, "a.txt")
		missing := filepath.Join(dir, "missing.txt")

		var out bytes.Buffer
		err := RunEraseFiles(context.Background(), useCase, logger, &out,
			actor, []string{pathA, missing}, "overwrite3", "retention expired", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2")

		// The healthy sibling was still destroyed and both attempts recorded.
		assert.NoFileExists(t, pathA)
		assert.Len(t, repo.records, 2)
		assert.Contains(t, out.String(), "FAILED")
		assert.Contains(t, out.String(), "ERASED")
	})

	t.Run("json output", func(t *testing.T) {
		useCase, _, _ := newUseCase()
		dir := t.TempDir()
		path := writeTempFile(t, dir, "a.txt")

		var out bytes.Buffer
		err := RunEraseFiles(context.Background(), useCase, logger, &out,
			actor, []string{path}, "dod5220", "retention expired", "json")
		require.NoError(t, err)

		var results []eraseResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, path, results[0].Path)
		assert.Equal(t, 3, results[0].Passes)
		assert.True(t, results[0].Verified)
	})

	t.Run("invalid method rejected", func(t *testing.T) {
		useCase, _, _ := newUseCase()

		var out bytes.Buffer
		err := RunEraseFiles(context.Background(), useCase, logger, &out,
			actor, []string{"/tmp/x"}, "shredder9000", "retention expired", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid erasure method")
	})

	t.Run("no paths rejected", func(t *testing.T) {
		useCase, _, _ := newUseCase()

		var out bytes.Buffer
		err := RunEraseFiles(context.Background(), useCase, logger, &out,
			actor, nil, "overwrite3", "retention expired", "text")
		require.Error(t, err)
	})
}
