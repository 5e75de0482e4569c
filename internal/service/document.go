package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
	"advocatehub/internal/storage"
	"advocatehub/internal/viewer"
)

const defaultPreviewExpiry = 15 * time.Minute

var (
	ErrIDRequired    = errors.New("id is required")
	ErrOwnerRequired = errors.New("owner is required")
	ErrNotFound      = errors.New("document not found")
	ErrReaderNil     = errors.New("reader is nil")
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentPreview is the render directive chosen for a stored document.
type DocumentPreview struct {
	Document  *model.Document  `json:"document"`
	Directive viewer.Directive `json:"directive"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// DocumentService manages a user's documents. Every call is scoped to ownerID; documents
// belonging to someone else are reported as ErrNotFound.
type DocumentService interface {
	// Upload stores the content, then its metadata. The stored object is removed again
	// if the metadata cannot be saved.
	Upload(ctx context.Context, ownerID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error)
	List(ctx context.Context, ownerID string, limit, offset int) (*DocumentListResult, error)
	Get(ctx context.Context, ownerID, id string) (*model.Document, error)
	// Delete removes the stored object first, then the metadata row.
	Delete(ctx context.Context, ownerID, id string) error
	// Preview presigns the stored object and selects how it should be rendered.
	Preview(ctx context.Context, ownerID, id string) (*DocumentPreview, error)
}

type documentService struct {
	store         storage.Storage
	repo          repository.DocumentRepository
	previewExpiry time.Duration
	now           func() time.Time
}

// NewDocumentService constructs a new DocumentService. A non-positive previewExpiry uses 15 minutes.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, previewExpiry time.Duration) DocumentService {
	if previewExpiry <= 0 {
		previewExpiry = defaultPreviewExpiry
	}
	return &documentService{store: store, repo: repo, previewExpiry: previewExpiry, now: time.Now}
}

func (s *documentService) Upload(ctx context.Context, ownerID string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	name := filepath.Base(filepath.Clean("/" + originalFilename))
	if name == "/" {
		name = "upload"
	}
	id := uuid.New().String()
	key := path.Join("documents", ownerID, id+filepath.Ext(name))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": name,
			"owner-id":          ownerID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	stored, err := s.repo.Create(ctx, &model.Document{
		ID:          id,
		OwnerID:     ownerID,
		Filename:    name,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, ownerID string, limit, offset int) (*DocumentListResult, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	res, err := s.repo.ListByOwner(ctx, ownerID, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, ownerID, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, ownerID, id string) error {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	// Storage goes first: a failure leaves the row in place so the object is not orphaned.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// Preview presigns the object behind id and runs render selection on it. The stored
// content type supplies the declared type hint.
func (s *documentService) Preview(ctx context.Context, ownerID, id string) (*DocumentPreview, error) {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	expiresAt := s.now().UTC().Add(s.previewExpiry)
	locator, err := s.store.PresignGet(ctx, doc.StoragePath, storage.PresignOptions{
		Expiry:   s.previewExpiry,
		Filename: doc.Filename,
	})
	if err != nil {
		return nil, fmt.Errorf("presign document: %w", err)
	}

	// The mode is selected on the storage key, which keeps the upload's extension;
	// the presigned URL ends in its signature query and would never match a suffix rule.
	d := viewer.Select(model.DocumentReference{
		Locator:      doc.StoragePath,
		DeclaredType: viewer.DeclaredTypeFor(doc.ContentType),
	})
	if d.Mode == viewer.ModeNoOp {
		d.Mode = viewer.ModeLinkOut
	}
	d.Locator = locator
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("document.id", doc.ID),
		attribute.String("document.render_mode", string(d.Mode)),
	)
	return &DocumentPreview{Document: doc, Directive: d, ExpiresAt: expiresAt}, nil
}
