package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfchat-backend/internal/shared/storage/object"
	"pdfchat-backend/internal/shared/telemetry"
	"pdfchat-backend/internal/shared/util"
)

// MaxUploadBytes caps the size of an uploaded PDF.
const MaxUploadBytes = 10 << 20

// Service owns document upload, listing, streaming and deletion.
type Service struct {
	repo  Repo
	store object.ObjectStore
}

func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{repo: repo, store: store}
}

// Upload stores the PDF bytes and records metadata. Uploading a file
// with the same name replaces the previous version for that user.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return Document{}, fmt.Errorf("%w: only PDF files are accepted", ErrInvalidInput)
	}
	cleanName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	key, size, mimeType, err := s.store.Save(ctx, userID, cleanName, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Document{}, fmt.Errorf("save object: %w", err)
	}
	if size > MaxUploadBytes {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			telemetry.Warn("documents.cleanup_failed", map[string]any{"storage_key": key, "error": delErr.Error()})
		}
		return Document{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, MaxUploadBytes)
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = "application/pdf"
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   cleanName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: key,
		UploadedAt: time.Now().UTC(),
	}
	doc.URL = "/api/v1/documents/" + doc.ID + "/file"

	saved, err := s.repo.Upsert(ctx, doc)
	if err != nil {
		return Document{}, err
	}

	telemetry.Info("documents.uploaded", map[string]any{
		"document_id": saved.ID,
		"user_id":     userID,
		"size_bytes":  saved.SizeBytes,
	})
	return saved, nil
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.repo.ListByUser(ctx, userID)
}

// Open returns the document metadata and a reader over its bytes.
// The caller must close the reader.
func (s *Service) Open(ctx context.Context, userID, id string) (Document, io.ReadCloser, error) {
	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, nil, fmt.Errorf("open object: %w", err)
	}
	return doc, rc, nil
}

// OpenByFileName resolves a document by its name within the user's
// library and returns its bytes.
func (s *Service) OpenByFileName(ctx context.Context, userID, fileName string) (Document, io.ReadCloser, error) {
	base := util.BaseFileName(fileName)
	if base == "" {
		return Document{}, nil, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}
	doc, err := s.repo.GetByUserAndFileName(ctx, userID, base)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, nil, fmt.Errorf("open object: %w", err)
	}
	return doc, rc, nil
}

// Delete removes the stored object and the metadata row.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.Info("documents.deleted", map[string]any{"document_id": id, "user_id": userID})
	return nil
}

func (s *Service) getOwned(ctx context.Context, userID, id string) (Document, error) {
	if userID == "" || id == "" {
		return Document{}, fmt.Errorf("%w: user id and document id required", ErrInvalidInput)
	}
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if doc.UserID != userID {
		return Document{}, ErrForbidden
	}
	return doc, nil
}
