package document_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/document"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/mocks"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores content and inserts the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := mocks.NewMockDocumentStore(ctrl)
		root := t.TempDir()
		registry := document.NewRegistry(config.DocumentsConfig{StorageRoot: root, MaxSize: 1024}, st, adapter.NewFileSystem(), adapter.NewIO())

		leadID := uuid.New()
		lead := domain.EntityTypeLead
		st.EXPECT().CreateDocument(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, doc *schema.CRMDocument) error {
			doc.ID = uuid.New()
			return nil
		})

		doc, err := registry.Register(ctx, document.RegisterInput{
			Name:         "contract.pdf",
			DocumentType: domain.DocumentTypeContract,
			EntityID:     &leadID,
			EntityType:   &lead,
			Content:      bytes.NewReader(pdf),
		})
		require.NoError(t, err)

		sum := checksum(pdf)
		assert.Equal(t, "application/pdf", doc.MimeType)
		assert.Equal(t, int64(len(pdf)), doc.SizeBytes)
		assert.Equal(t, sum, doc.ChecksumSHA256)
		assert.Equal(t, filepath.Join(sum[:2], sum+".pdf"), doc.StoragePath)
		assert.Equal(t, domain.DocumentTypeContract, doc.DocumentType)

		stored, err := os.ReadFile(filepath.Join(root, doc.StoragePath))
		require.NoError(t, err)
		assert.Equal(t, pdf, stored)
	})

	t.Run("document type defaults to other", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := mocks.NewMockDocumentStore(ctrl)
		registry := document.NewRegistry(config.DocumentsConfig{StorageRoot: t.TempDir()}, st, adapter.NewFileSystem(), adapter.NewIO())

		st.EXPECT().CreateDocument(ctx, gomock.Any()).Return(nil)

		doc, err := registry.Register(ctx, document.RegisterInput{Name: "notes", Content: strings.NewReader("meeting notes")})
		require.NoError(t, err)
		assert.Equal(t, domain.DocumentTypeOther, doc.DocumentType)
		assert.True(t, strings.HasPrefix(doc.MimeType, "text/plain"))
	})

	t.Run("rejected input", func(t *testing.T) {
		leadID := uuid.New()
		unknown := domain.EntityType("planet")

		tests := []struct {
			name  string
			cfg   config.DocumentsConfig
			input document.RegisterInput
		}{
			{
				name:  "missing name",
				input: document.RegisterInput{Content: bytes.NewReader(pdf)},
			},
			{
				name:  "unknown document type",
				input: document.RegisterInput{Name: "x", DocumentType: "memo", Content: bytes.NewReader(pdf)},
			},
			{
				name:  "entity id without type",
				input: document.RegisterInput{Name: "x", EntityID: &leadID, Content: bytes.NewReader(pdf)},
			},
			{
				name:  "unknown entity type",
				input: document.RegisterInput{Name: "x", EntityID: &leadID, EntityType: &unknown, Content: bytes.NewReader(pdf)},
			},
			{
				name:  "empty content",
				input: document.RegisterInput{Name: "x", Content: bytes.NewReader(nil)},
			},
			{
				name:  "too large",
				cfg:   config.DocumentsConfig{MaxSize: 10},
				input: document.RegisterInput{Name: "x", Content: bytes.NewReader(pdf)},
			},
			{
				name:  "type not allowed",
				cfg:   config.DocumentsConfig{AllowedTypes: []string{"image/png"}},
				input: document.RegisterInput{Name: "x", Content: bytes.NewReader(pdf)},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				st := mocks.NewMockDocumentStore(ctrl)
				tt.cfg.StorageRoot = t.TempDir()
				registry := document.NewRegistry(tt.cfg, st, adapter.NewFileSystem(), adapter.NewIO())

				doc, err := registry.Register(ctx, tt.input)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Nil(t, doc)
			})
		}
	})

	t.Run("failed write removes the partial file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := mocks.NewMockDocumentStore(ctrl)
		fs := mocks.NewMockFileSystem(ctrl)
		file := mocks.NewMockFile(ctrl)
		registry := document.NewRegistry(config.DocumentsConfig{StorageRoot: "/data"}, st, fs, adapter.NewIO())

		sum := checksum(pdf)
		fullPath := filepath.Join("/data", sum[:2], sum+".pdf")

		fs.EXPECT().MkdirAll(filepath.Dir(fullPath), os.FileMode(0750)).Return(nil)
		fs.EXPECT().Create(fullPath).Return(file, nil)
		file.EXPECT().Write(pdf).Return(0, errors.New("disk full"))
		file.EXPECT().Close().Return(nil)
		fs.EXPECT().Remove(fullPath).Return(nil)

		doc, err := registry.Register(ctx, document.RegisterInput{Name: "x", Content: bytes.NewReader(pdf)})
		assert.ErrorContains(t, err, "disk full")
		assert.Nil(t, doc)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := mocks.NewMockDocumentStore(ctrl)
		registry := document.NewRegistry(config.DocumentsConfig{StorageRoot: t.TempDir()}, st, adapter.NewFileSystem(), adapter.NewIO())

		st.EXPECT().CreateDocument(ctx, gomock.Any()).Return(domain.ErrPermissionDenied)

		_, err := registry.Register(ctx, document.RegisterInput{Name: "x", Content: bytes.NewReader(pdf)})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}
