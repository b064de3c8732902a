// Package service implements the low-level destruction primitives for secure
// erasure: fingerprinting targets before destruction and overwriting contents
// pass by pass.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"

	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// chunkSize is the buffer size used for overwrite passes and fingerprinting.
const chunkSize = 256 * 1024

// DoD 5220.22-M pass bytes. The second pass is the bitwise complement of the first.
const (
	dodPassByte           = 0x35
	dodComplementPassByte = 0xCA
)

// Fingerprint identifies a file before destruction: its SHA-256 content hash
// and size. The hash goes into the deletion record as proof of what was
// destroyed.
type Fingerprint struct {
	ContentHash string
	Size        int64
}

// Shredder destroys file contents.
type Shredder interface {
	// Fingerprint verifies the target is an erasable regular file and returns
	// its content hash and size. Nothing is modified.
	Fingerprint(path string) (Fingerprint, error)

	// Erase destroys the file at path using the given method and unlinks it.
	// Returns the number of overwrite passes that completed. A failed or
	// cancelled pass aborts the remaining passes but the unlink is still
	// attempted; on error the on-disk state is unknown and callers must
	// escalate.
	Erase(ctx context.Context, path string, method erasureDomain.Method) (int, error)
}

// FileShredder implements Shredder against the local filesystem.
//
// Overwrite passes go through the file in fixed-size chunks with an fsync
// after each full pass, so a crash mid-erase leaves at most one unsynced
// pass. Context cancellation is honored between chunks.
type FileShredder struct {
	hasher cryptoService.Hasher
}

// NewFileShredder creates a new FileShredder using the given content hasher
// for pre-destruction fingerprints.
func NewFileShredder(hasher cryptoService.Hasher) *FileShredder {
	return &FileShredder{hasher: hasher}
}

// Fingerprint verifies the target and computes its SHA-256 hash and size.
func (s *FileShredder) Fingerprint(path string) (Fingerprint, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Fingerprint{}, apperrors.Wrap(erasureDomain.ErrTargetNotErasable, err.Error())
	}
	if !info.Mode().IsRegular() {
		return Fingerprint{}, apperrors.Wrap(erasureDomain.ErrTargetNotErasable,
			fmt.Sprintf("%s is not a regular file", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, apperrors.Wrap(erasureDomain.ErrTargetNotErasable, err.Error())
	}
	defer func() {
		_ = f.Close()
	}()

	hash, err := s.hasher.HashReader(f)
	if err != nil {
		return Fingerprint{}, apperrors.Wrap(erasureDomain.ErrTargetNotErasable, err.Error())
	}

	return Fingerprint{
		ContentHash: hash,
		Size:        info.Size(),
	}, nil
}

// Erase destroys the file contents per the method and unlinks the file.
//
// When a pass fails or the context is cancelled, the remaining passes are
// skipped but the unlink is still attempted: a partially overwritten file
// left in the namespace is worse than an unlinked one. The pass error wins
// over any unlink error in the returned value.
func (s *FileShredder) Erase(
	ctx context.Context,
	path string,
	method erasureDomain.Method,
) (int, error) {
	// Crypto-erase relies on the key having been destroyed: the ciphertext on
	// disk is unreadable without it, so unlinking is sufficient.
	if method == erasureDomain.MethodCryptoErase {
		if err := os.Remove(path); err != nil {
			return 0, apperrors.Wrap(erasureDomain.ErrEraseIncomplete, err.Error())
		}
		return 0, nil
	}

	passes, err := passPatterns(method)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return 0, apperrors.Wrap(erasureDomain.ErrEraseIncomplete, err.Error())
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return 0, abortErase(path, err)
	}
	size := info.Size()

	completed := 0
	for _, pattern := range passes {
		if err := writePass(ctx, f, size, pattern); err != nil {
			_ = f.Close()
			return completed, abortErase(path, err)
		}
		// Force each pass to the device before starting the next. Without the
		// sync, stacked passes can collapse into a single write in the page cache.
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return completed, abortErase(path, err)
		}
		completed++
	}

	if err := f.Close(); err != nil {
		return completed, abortErase(path, err)
	}
	if err := os.Remove(path); err != nil {
		return completed, apperrors.Wrap(erasureDomain.ErrEraseIncomplete, err.Error())
	}

	return completed, nil
}

// abortErase attempts the unlink after a failed pass and wraps the original
// pass error. The unlink is best effort: its failure does not mask why the
// erase aborted.
func abortErase(path string, passErr error) error {
	if rmErr := os.Remove(path); rmErr != nil {
		return apperrors.Wrap(erasureDomain.ErrEraseIncomplete,
			fmt.Sprintf("%v (unlink also failed: %v)", passErr, rmErr))
	}
	return apperrors.Wrap(erasureDomain.ErrEraseIncomplete, passErr.Error())
}

// passPattern describes one overwrite pass: a fixed fill byte or fresh random
// data for every chunk.
type passPattern struct {
	fill   byte
	random bool
}

// passPatterns returns the pass sequence for an overwrite method. The
// overwrite methods cycle through zeros, ones and random data.
func passPatterns(method erasureDomain.Method) ([]passPattern, error) {
	switch method {
	case erasureDomain.MethodOverwrite3:
		return []passPattern{
			{fill: 0x00},
			{fill: 0xFF},
			{random: true},
		}, nil
	case erasureDomain.MethodOverwrite7:
		return []passPattern{
			{fill: 0x00},
			{fill: 0xFF},
			{random: true},
			{fill: 0x00},
			{fill: 0xFF},
			{random: true},
			{fill: 0x00},
		}, nil
	case erasureDomain.MethodDoD5220:
		return []passPattern{
			{fill: dodPassByte},
			{fill: dodComplementPassByte},
			{random: true},
		}, nil
	default:
		return nil, apperrors.Wrap(erasureDomain.ErrUnsupportedMethod, string(method))
	}
}

// writePass overwrites the whole file once with the given pattern, honoring
// context cancellation between chunks.
func writePass(ctx context.Context, f *os.File, size int64, pattern passPattern) error {
	buf := make([]byte, chunkSize)
	if !pattern.random {
		for i := range buf {
			buf[i] = pattern.fill
		}
	}

	var offset int64
	for offset < size {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := int64(len(buf))
		if size-offset < n {
			n = size - offset
		}

		if pattern.random {
			if _, err := rand.Read(buf[:n]); err != nil {
				return err
			}
		}

		if _, err := f.WriteAt(buf[:n], offset); err != nil {
			return err
		}
		offset += n
	}

	return nil
}
