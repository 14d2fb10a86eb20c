// Package document stores uploaded CRM documents and registers them in crm_documents.
package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// DefaultMaxSize bounds uploads when no limit is configured
const DefaultMaxSize = 25 << 20

// Store persists document rows
//
//go:generate mockgen -source=registry.go -destination=../mocks/document.go -package=mocks -mock_names=Store=MockDocumentStore,Registry=MockDocumentRegistry
type Store interface {
	CreateDocument(ctx context.Context, document *schema.CRMDocument) error
}

// Registry registers uploaded documents
type Registry interface {
	// Register sniffs, checksums and stores the content, then inserts the row
	Register(ctx context.Context, input RegisterInput) (*schema.CRMDocument, error)
}

// RegisterInput describes one upload
type RegisterInput struct {
	Name         string
	DocumentType domain.DocumentType
	EntityID     *uuid.UUID
	EntityType   *domain.EntityType
	Description  *string
	Content      io.Reader
}

type registry struct {
	config config.DocumentsConfig
	store  Store
	fs     adapter.FileSystem
	io     adapter.IO
}

// NewRegistry creates a document registry writing under cfg.StorageRoot
func NewRegistry(cfg config.DocumentsConfig, st Store, fs adapter.FileSystem, ioAdapter adapter.IO) Registry {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	return &registry{
		config: cfg,
		store:  st,
		fs:     fs,
		io:     ioAdapter,
	}
}

func (r *registry) Register(ctx context.Context, input RegisterInput) (*schema.CRMDocument, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}
	if input.DocumentType == "" {
		input.DocumentType = domain.DocumentTypeOther
	}
	if !input.DocumentType.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidInput, input.DocumentType)
	}
	if (input.EntityID == nil) != (input.EntityType == nil) {
		return nil, fmt.Errorf("%w: entity id and type go together", domain.ErrInvalidInput)
	}
	if input.EntityType != nil && !input.EntityType.Valid() {
		return nil, fmt.Errorf("%w: unknown entity type %q", domain.ErrInvalidInput, *input.EntityType)
	}

	data, err := r.io.ReadLimited(input.Content, r.config.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: document is empty", domain.ErrInvalidInput)
	}
	if int64(len(data)) > r.config.MaxSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", domain.ErrInvalidInput, r.config.MaxSize)
	}

	mtype := mimetype.Detect(data)
	if len(r.config.AllowedTypes) > 0 && !mimetype.EqualsAny(mtype.String(), r.config.AllowedTypes...) {
		return nil, fmt.Errorf("%w: document type %s is not allowed", domain.ErrInvalidInput, mtype.String())
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	storagePath := StoragePath(checksum, mtype.Extension())

	if err := r.write(storagePath, data); err != nil {
		return nil, err
	}

	doc := &schema.CRMDocument{
		EntityID:       input.EntityID,
		EntityType:     input.EntityType,
		Name:           input.Name,
		DocumentType:   input.DocumentType,
		MimeType:       mtype.String(),
		SizeBytes:      int64(len(data)),
		ChecksumSHA256: checksum,
		StoragePath:    storagePath,
		Description:    input.Description,
	}
	if err := r.store.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Registered document",
		zap.String("id", doc.ID.String()),
		zap.String("mimeType", doc.MimeType),
		zap.Int64("size", doc.SizeBytes),
		zap.String("checksum", checksum))

	return doc, nil
}

// write stores data under the storage root. Content is addressed by checksum,
// so rewriting an existing path writes identical bytes.
func (r *registry) write(storagePath string, data []byte) error {
	fullPath := filepath.Join(r.config.StorageRoot, storagePath)
	if err := r.fs.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}

	f, err := r.fs.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create document file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = r.fs.Remove(fullPath)
		return fmt.Errorf("failed to write document file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close document file: %w", err)
	}
	return nil
}

// StoragePath is the content-addressed location of a document relative to the
// storage root: two-character fan-out directory, then checksum and extension
func StoragePath(checksum, extension string) string {
	return filepath.Join(checksum[:2], checksum+extension)
}
