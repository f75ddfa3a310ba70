package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/storage"
)

// DocumentRepository defines document repository operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Document, error)
}

// ClientLookup reports whether a client exists
type ClientLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Transactor runs fn in one database transaction carried by ctx
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DocumentService keeps document rows and blobs in step
type DocumentService struct {
	docs     DocumentRepository
	clients  ClientLookup
	blobs    storage.BlobStore
	tx       Transactor
	maxFiles int
	logger   *zap.Logger
}

// NewDocumentService creates a new document service. maxFiles <= 0 means no per-request limit.
func NewDocumentService(
	docs DocumentRepository,
	clients ClientLookup,
	blobs storage.BlobStore,
	tx Transactor,
	maxFiles int,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		docs:     docs,
		clients:  clients,
		blobs:    blobs,
		tx:       tx,
		maxFiles: maxFiles,
		logger:   logger.Named("document_service"),
	}
}

// Attach stores every file, then records a row for each in one transaction,
// all or nothing. Blobs written before a failure are removed again.
func (s *DocumentService) Attach(ctx context.Context, clientID uuid.UUID, files []domain.UploadFile) ([]*domain.Document, error) {
	if len(files) == 0 {
		return nil, apperrors.Validation("at least one document is required")
	}
	if s.maxFiles > 0 && len(files) > s.maxFiles {
		return nil, apperrors.Validation(fmt.Sprintf("at most %d documents may be uploaded at once", s.maxFiles))
	}
	for _, f := range files {
		if f.Name == "" {
			return nil, apperrors.Validation("document filename is required")
		}
	}

	exists, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("client")
	}

	// The transaction covers the row inserts only; blob writes happen before it.
	keys := make([]string, 0, len(files))
	for _, f := range files {
		key := storage.NewBlobKey(clientID, f.Name)
		if err := s.putBlob(ctx, key, f); err != nil {
			unlinkBlobs(context.WithoutCancel(ctx), s.blobs, s.logger, keys)
			return nil, err
		}
		keys = append(keys, key)
	}

	var docs []*domain.Document
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		docs = make([]*domain.Document, 0, len(files))
		for i, f := range files {
			doc := &domain.Document{
				ClientID:     clientID,
				DocumentName: f.Name,
				DocumentPath: keys[i],
				SizeBytes:    f.Size,
			}
			if err := s.docs.Create(ctx, doc); err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		unlinkBlobs(context.WithoutCancel(ctx), s.blobs, s.logger, keys)
		return nil, err
	}

	s.logger.Info("documents attached",
		zap.String("client_id", clientID.String()),
		zap.Int("count", len(docs)),
	)
	return docs, nil
}

func (s *DocumentService) putBlob(ctx context.Context, key string, f domain.UploadFile) error {
	rc, err := f.Open()
	if err != nil {
		return apperrors.BadRequest("failed to read uploaded file " + f.Name).WithError(err)
	}
	defer rc.Close()

	if err := s.blobs.Put(ctx, key, rc, f.Size, storage.ContentTypeFor(f.Name)); err != nil {
		return apperrors.Storage("failed to store document", err)
	}
	return nil
}

// ListByClient returns the document rows of a client
func (s *DocumentService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Document, error) {
	return s.docs.ListByClient(ctx, clientID)
}

// FetchBlob opens a document for streaming. A missing row and a missing blob
// are both NotFound, with distinct messages.
func (s *DocumentService) FetchBlob(ctx context.Context, id uuid.UUID) (*domain.DocumentBlob, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.blobs.Exists(ctx, doc.DocumentPath)
	if err != nil {
		return nil, apperrors.Storage("failed to check document file", err)
	}
	if !exists {
		return nil, apperrors.NotFound("document file")
	}

	body, size, err := s.blobs.Open(ctx, doc.DocumentPath)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, apperrors.NotFound("document file")
		}
		return nil, apperrors.Storage("failed to open document file", err)
	}

	return &domain.DocumentBlob{
		Document:    doc,
		Body:        body,
		Size:        size,
		ContentType: storage.ContentTypeFor(doc.DocumentName),
		Filename:    doc.DocumentName,
	}, nil
}

// Delete removes the row, then unlinks the blob best-effort
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.docs.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	unlinkBlobs(context.WithoutCancel(ctx), s.blobs, s.logger, []string{doc.DocumentPath})
	return doc, nil
}
