package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
)

// Manual mocks for KMS since the keeper comes from gocloud.dev at runtime.
type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, uri string) (cryptoDomain.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoDomain.KMSKeeper), args.Error(1)
}

type MockKMSKeeper struct {
	mock.Mock
}

func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

func TestRunCreateMasterSecret(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("clear-mode", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateMasterSecret(ctx, nil, logger, &out, "")
		require.NoError(t, err)
		require.Contains(t, out.String(), "MASTER_SECRET=")

		// The printed secret is valid base64 of at least 32 bytes.
		re := regexp.MustCompile(`MASTER_SECRET="([^"]+)"`)
		matches := re.FindStringSubmatch(out.String())
		require.Len(t, matches, 2)
		decoded, err := base64.StdEncoding.DecodeString(matches[1])
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(decoded), cryptoDomain.MinMasterSecretSize)
	})

	t.Run("kms-mode", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("wrapped"), nil)
		mockKeeper.On("Close").Return(nil)

		var out bytes.Buffer
		err := RunCreateMasterSecret(ctx, mockService, logger, &out, "base64key://...")
		require.NoError(t, err)
		require.Contains(t, out.String(), "MASTER_SECRET_WRAPPED=")
		require.Contains(t, out.String(), `KMS_KEY_URI="base64key://..."`)
		require.NotContains(t, out.String(), "MASTER_SECRET=\"")

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("kms-open-keeper-failure", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("OpenKeeper", ctx, "gcpkms://bad").Return(nil, errors.New("unreachable"))

		var out bytes.Buffer
		err := RunCreateMasterSecret(ctx, mockService, logger, &out, "gcpkms://bad")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}
