package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

// Per-kind size caps.
const (
	maxPhotoSize    = 5 << 20  // photos and signatures
	maxDocumentSize = 10 << 20 // identity / residence documents
)

// localStore keeps uploads on the local disk under a single directory.
// Every file gets a fresh generated name, so writes never collide and the
// directory is append-only from the portal's point of view.
type localStore struct {
	dir string
	log zerolog.Logger
	now func() time.Time
}

var _ ports.BlobStore = (*localStore)(nil)

// NewLocalStore creates the uploads directory when missing and returns the
// store.
func NewLocalStore(dir string, baseLogger *zerolog.Logger) (ports.BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload dir %s: %w", dir, err)
	}
	return &localStore{
		dir: dir,
		log: baseLogger.With().Str("component", "blob_store").Logger(),
		now: time.Now,
	}, nil
}

// Store validates the payload (content kind and size) and writes it under a
// generated name.
func (s *localStore) Store(ctx context.Context, kind ports.BlobKind, suggestedName string, r io.Reader) (string, error) {
	limit := int64(maxDocumentSize)
	if kind == ports.BlobPhoto || kind == ports.BlobSignature {
		limit = maxPhotoSize
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("could not read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return "", domain.ErrPayloadTooLarge
	}
	if !allowedContent(data) {
		return "", domain.ErrUnsupportedMedia
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeName(suggestedName))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		s.log.Error().Err(err).Str("filename", name).Msg("Failed to write upload")
		return "", err
	}

	s.log.Info().Str("filename", name).Str("kind", string(kind)).Int("bytes", len(data)).Msg("File stored")
	return name, nil
}

// Resolve maps a stored filename to its public path.
func (s *localStore) Resolve(storedName string) string {
	return path.Join("/uploads", storedName)
}

// allowedContent sniffs the payload; only PNG, JPEG and PDF pass.
func allowedContent(data []byte) bool {
	switch http.DetectContentType(data) {
	case "image/png", "image/jpeg", "application/pdf":
		return true
	}
	return false
}

// sanitizeName strips path components and anything outside a conservative
// character set from the client-supplied filename.
func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
