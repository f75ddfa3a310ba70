package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/storage"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/validator"
)

// ClientRepository defines client repository operations
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client, payment *domain.PaymentDetails) error
	List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) (*domain.Client, []string, error)
}

// ClientService handles the client lifecycle
type ClientService struct {
	repo   ClientRepository
	blobs  storage.BlobStore
	logger *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(repo ClientRepository, blobs storage.BlobStore, logger *zap.Logger) *ClientService {
	return &ClientService{
		repo:   repo,
		blobs:  blobs,
		logger: logger.Named("client_service"),
	}
}

// Create stores a client and its optional payment details atomically. The
// returned client does not carry payment fields.
func (s *ClientService) Create(ctx context.Context, input *domain.ClientInput) (*domain.Client, error) {
	if err := validator.Check(input); err != nil {
		return nil, err
	}

	client := clientFromInput(uuid.Nil, input)

	var payment *domain.PaymentDetails
	if pd := input.PaymentDetails; pd != nil {
		payment = &domain.PaymentDetails{
			AmountPaid:      pd.AmountPaid,
			PaymentDuration: pd.PaymentDuration,
			TotalAmount:     pd.TotalAmount,
			Balance:         pd.Balance,
		}
	}

	if err := s.repo.Create(ctx, client, payment); err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.Bool("with_payment", payment != nil),
	)
	return client, nil
}

// List returns the clients selected by a named filter
func (s *ClientService) List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	if !filter.Valid() {
		return nil, apperrors.Validation("unknown client filter: " + string(filter))
	}
	return s.repo.List(ctx, filter)
}

// Get retrieves one client
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces every client-owned column. Payment details are not touched.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input *domain.ClientInput) (*domain.Client, error) {
	if err := validator.Check(input); err != nil {
		return nil, err
	}

	client := clientFromInput(id, input)
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes the client with its documents and payment details, then
// unlinks the document blobs.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, paths, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	unlinkBlobs(context.WithoutCancel(ctx), s.blobs, s.logger, paths)

	s.logger.Info("client deleted",
		zap.String("client_id", id.String()),
		zap.Int("documents", len(paths)),
	)
	return client, nil
}

func clientFromInput(id uuid.UUID, input *domain.ClientInput) *domain.Client {
	return &domain.Client{
		ID:                 id,
		Project:            input.Project,
		Bedrooms:           input.Bedrooms,
		Budget:             input.Budget,
		Schedule:           input.Schedule,
		Email:              input.Email,
		Fullname:           input.Fullname,
		Phone:              input.Phone,
		Quality:            input.Quality,
		ConversationStatus: input.ConversationStatus,
	}
}

// unlinkBlobs deletes each blob, logging failures. A blob that is already gone is not a failure.
func unlinkBlobs(ctx context.Context, blobs storage.BlobStore, logger *zap.Logger, keys []string) {
	for _, key := range keys {
		err := blobs.Delete(ctx, key)
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrBlobNotFound):
			logger.Debug("blob already removed", zap.String("key", key))
		default:
			logger.Warn("failed to unlink blob",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}
