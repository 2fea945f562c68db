package ports

import (
	"context"
	"io"
)

// BlobKind selects the validation profile for an uploaded file.
type BlobKind string

const (
	BlobPhoto     BlobKind = "photo"
	BlobSignature BlobKind = "signature"
	BlobDocument  BlobKind = "document"
)

// BlobStore is the opaque file-storage capability. Every stored file gets a
// fresh generated name, so writes never contend.
type BlobStore interface {
	// Store validates and persists the file, returning the generated
	// stored filename. Rejects unsupported content kinds and oversized
	// payloads with domain.ErrUnsupportedMedia / domain.ErrPayloadTooLarge.
	Store(ctx context.Context, kind BlobKind, suggestedName string, r io.Reader) (string, error)

	// Resolve maps a stored filename to a retrievable path.
	Resolve(storedName string) string
}
