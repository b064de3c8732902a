package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
)

// RunCreateMasterSecret generates a cryptographically secure 32-byte master
// secret for envelope encryption. Secret material is zeroed from memory after
// encoding.
//
// Two output modes:
//   - Without --kms-key-uri: prints MASTER_SECRET in the clear (development only)
//   - With --kms-key-uri: wraps the secret with KMS before output and prints
//     MASTER_SECRET_WRAPPED plus KMS_KEY_URI
//
// Security: never use the clear output mode in production. Use cloud KMS
// providers (gcpkms, awskms, azurekeyvault, hashivault).
func RunCreateMasterSecret(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	w io.Writer,
	kmsKeyURI string,
) error {
	// Generate a cryptographically secure 32-byte master secret
	secret := make([]byte, cryptoDomain.MinMasterSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate master secret: %w", err)
	}
	defer cryptoDomain.Zero(secret)

	if kmsKeyURI == "" {
		fmt.Fprintln(w, "# Master Secret Configuration (clear mode - development only)")
		fmt.Fprintln(w, "# Copy this environment variable to your .env file")
		fmt.Fprintln(w, "#")
		fmt.Fprintln(w, "# For production, wrap the secret with a KMS key instead:")
		fmt.Fprintln(w, "#   create-master-secret --kms-key-uri=\"gcpkms://projects/.../cryptoKeys/...\"")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "MASTER_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(secret))
		return nil
	}

	logger.Info("wrapping master secret with KMS", slog.String("kms_key_uri", kmsKeyURI))

	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeperInterface.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	// The keeper contract only guarantees Decrypt; wrapping needs Encrypt.
	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return fmt.Errorf("failed to wrap master secret with KMS: %w", err)
	}

	fmt.Fprintln(w, "# Master Secret Configuration (KMS mode)")
	fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(w, "MASTER_SECRET_WRAPPED=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))

	return nil
}
