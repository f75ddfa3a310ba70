package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/database"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
)

const clientColumns = `id, project, bedrooms, budget, schedule, email, fullname, phone, quality, conversation_status, created_at`

const clientWithPaymentSelect = `
	SELECT c.id, c.project, c.bedrooms, c.budget, c.schedule, c.email, c.fullname, c.phone,
		c.quality, c.conversation_status, c.created_at,
		p.id, p.amount_paid, p.payment_duration, p.total_amount, p.balance, p.payment_date
	FROM clients c
	LEFT JOIN payment_details p ON p.client_id = c.id
`

const clientOrder = ` ORDER BY c.created_at, c.id`

// listQueries holds one fixed statement per named filter. Values are bound, never interpolated.
var listQueries = map[domain.ClientFilter]struct {
	sql  string
	args []any
}{
	domain.ClientFilterAll:         {sql: clientWithPaymentSelect + clientOrder},
	domain.ClientFilterFinalized:   {sql: clientWithPaymentSelect + ` WHERE c.conversation_status = $1` + clientOrder, args: []any{domain.StatusFinalizedDeal}},
	domain.ClientFilterPending:     {sql: clientWithPaymentSelect + ` WHERE c.conversation_status = $1` + clientOrder, args: []any{domain.StatusPending}},
	domain.ClientFilterHighQuality: {sql: clientWithPaymentSelect + ` WHERE c.quality = $1` + clientOrder, args: []any{domain.QualityHigh}},
}

// ClientRepository handles client and payment detail rows in PostgreSQL
type ClientRepository struct {
	db *database.PostgresDB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *database.PostgresDB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts the client and, when given, its payment details in one transaction.
// IDs are generated here; payment_date is taken at call time.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client, payment *domain.PaymentDetails) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}

	return database.Transaction(ctx, r.db, func(ctx context.Context) error {
		query := `
			INSERT INTO clients (id, project, bedrooms, budget, schedule, email, fullname, phone, quality, conversation_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at
		`
		err := r.db.QueryRow(ctx, query,
			client.ID,
			client.Project,
			client.Bedrooms,
			client.Budget,
			client.Schedule,
			client.Email,
			client.Fullname,
			client.Phone,
			client.Quality,
			client.ConversationStatus,
		).Scan(&client.CreatedAt)
		if err != nil {
			return apperrors.Persistence("failed to create client", err)
		}

		if payment == nil {
			return nil
		}

		if payment.ID == uuid.Nil {
			payment.ID = uuid.New()
		}
		payment.ClientID = client.ID
		if payment.PaymentDate.IsZero() {
			payment.PaymentDate = time.Now().UTC()
		}

		_, err = r.db.Exec(ctx, `
			INSERT INTO payment_details (id, client_id, amount_paid, payment_duration, total_amount, balance, payment_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			payment.ID,
			payment.ClientID,
			payment.AmountPaid,
			payment.PaymentDuration,
			payment.TotalAmount,
			payment.Balance,
			payment.PaymentDate,
		)
		if err != nil {
			return apperrors.Persistence("failed to create payment details", err)
		}
		return nil
	})
}

// List returns the clients selected by a named filter, oldest first
func (r *ClientRepository) List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	q, ok := listQueries[filter]
	if !ok {
		return nil, apperrors.Validation("unknown client filter: " + string(filter))
	}

	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return nil, apperrors.Persistence("failed to list clients", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClientWithPayment(rows)
		if err != nil {
			return nil, apperrors.Persistence("failed to scan client", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("failed to list clients", err)
	}

	return clients, nil
}

// GetByID retrieves a client with its payment details, if any
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := scanClientWithPayment(r.db.QueryRow(ctx, clientWithPaymentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("client")
		}
		return nil, apperrors.Persistence("failed to get client", err)
	}
	return client, nil
}

// Exists reports whether a client row is present
func (r *ClientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, apperrors.Persistence("failed to check client", err)
	}
	return exists, nil
}

// Update overwrites every client-owned column. The row lock taken by UPDATE
// serialises concurrent writers on the same client.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET project = $2, bedrooms = $3, budget = $4, schedule = $5, email = $6,
			fullname = $7, phone = $8, quality = $9, conversation_status = $10
		WHERE id = $1
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		client.ID,
		client.Project,
		client.Bedrooms,
		client.Budget,
		client.Schedule,
		client.Email,
		client.Fullname,
		client.Phone,
		client.Quality,
		client.ConversationStatus,
	).Scan(&client.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("client")
		}
		return apperrors.Persistence("failed to update client", err)
	}

	return nil
}

// Delete removes the client, its document rows and its payment details in one
// transaction. It returns the deleted client and the storage paths of the
// removed documents so the caller can unlink their blobs after commit.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Client, []string, error) {
	var (
		deleted *domain.Client
		paths   []string
	)

	err := database.Transaction(ctx, r.db, func(ctx context.Context) error {
		var locked uuid.UUID
		err := r.db.QueryRow(ctx, `SELECT id FROM clients WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NotFound("client")
			}
			return apperrors.Persistence("failed to lock client", err)
		}

		rows, err := r.db.Query(ctx, `DELETE FROM client_documents WHERE client_id = $1 RETURNING document_path`, id)
		if err != nil {
			return apperrors.Persistence("failed to delete client documents", err)
		}
		paths, err = pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return apperrors.Persistence("failed to delete client documents", err)
		}

		if _, err := r.db.Exec(ctx, `DELETE FROM payment_details WHERE client_id = $1`, id); err != nil {
			return apperrors.Persistence("failed to delete payment details", err)
		}

		client, err := scanClient(r.db.QueryRow(ctx, `DELETE FROM clients WHERE id = $1 RETURNING `+clientColumns, id))
		if err != nil {
			return apperrors.Persistence("failed to delete client", err)
		}
		deleted = client
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return deleted, paths, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.Project,
		&c.Bedrooms,
		&c.Budget,
		&c.Schedule,
		&c.Email,
		&c.Fullname,
		&c.Phone,
		&c.Quality,
		&c.ConversationStatus,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClientWithPayment(row pgx.Row) (*domain.Client, error) {
	var (
		c               domain.Client
		paymentID       *uuid.UUID
		amountPaid      *float64
		paymentDuration *string
		totalAmount     *float64
		balance         *float64
		paymentDate     *time.Time
	)

	err := row.Scan(
		&c.ID,
		&c.Project,
		&c.Bedrooms,
		&c.Budget,
		&c.Schedule,
		&c.Email,
		&c.Fullname,
		&c.Phone,
		&c.Quality,
		&c.ConversationStatus,
		&c.CreatedAt,
		&paymentID,
		&amountPaid,
		&paymentDuration,
		&totalAmount,
		&balance,
		&paymentDate,
	)
	if err != nil {
		return nil, err
	}

	if paymentID != nil {
		c.PaymentDetails = &domain.PaymentDetails{
			ID:              *paymentID,
			ClientID:        c.ID,
			AmountPaid:      deref(amountPaid),
			PaymentDuration: deref(paymentDuration),
			TotalAmount:     deref(totalAmount),
			Balance:         deref(balance),
			PaymentDate:     deref(paymentDate),
		}
	}

	return &c, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
