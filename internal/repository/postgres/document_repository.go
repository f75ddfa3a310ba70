package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/database"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
)

const documentColumns = `id, client_id, document_name, document_path, size_bytes, uploaded_at`

const foreignKeyViolation = "23503"

// DocumentRepository handles client_documents rows in PostgreSQL
type DocumentRepository struct {
	db *database.PostgresDB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *database.PostgresDB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a document row. A missing client surfaces as NotFound.
func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	query := `
		INSERT INTO client_documents (id, client_id, document_name, document_path, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		doc.ID,
		doc.ClientID,
		doc.DocumentName,
		doc.DocumentPath,
		doc.SizeBytes,
	).Scan(&doc.UploadedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return apperrors.NotFound("client")
		}
		return apperrors.Persistence("failed to create document", err)
	}

	return nil
}

// ListByClient returns a client's documents in upload order
func (r *DocumentRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM client_documents WHERE client_id = $1 ORDER BY uploaded_at, id`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.Persistence("failed to list documents", err)
	}
	defer rows.Close()

	docs := make([]*domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.Persistence("failed to scan document", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("failed to list documents", err)
	}

	return docs, nil
}

// GetByID retrieves a document row
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM client_documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("document")
		}
		return nil, apperrors.Persistence("failed to get document", err)
	}
	return doc, nil
}

// Delete removes a document row and returns it
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := scanDocument(r.db.QueryRow(ctx, `DELETE FROM client_documents WHERE id = $1 RETURNING `+documentColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("document")
		}
		return nil, apperrors.Persistence("failed to delete document", err)
	}
	return doc, nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.ID,
		&d.ClientID,
		&d.DocumentName,
		&d.DocumentPath,
		&d.SizeBytes,
		&d.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
