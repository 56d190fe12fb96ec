package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"daily_quran_service/internal/domain/subscriber"

	"github.com/lib/pq"
)

// Custom errors
var ErrSubscriberNotFound = fmt.Errorf("subscriber not found")
var ErrDuplicateContact = fmt.Errorf("subscriber with this email or phone already exists")

const uniqueViolationCode = "23505"

type PostgresSubscriberRepository struct {
	db *sql.DB
}

func NewPostgresSubscriberRepository(db *sql.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

func (r *PostgresSubscriberRepository) Create(ctx context.Context, sub *subscriber.Subscriber) error {
	query := `INSERT INTO subscribers (id, name, email, phone, is_active, created_at)
               VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.Name, sub.Email, sub.Phone, sub.IsActive, sub.CreatedAt)
	if err != nil {
		// The partial unique indexes on email and phone are the backstop for
		// concurrent registrations racing past the service-level conflict check.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return ErrDuplicateContact
		}
		return fmt.Errorf("error creating subscriber: %w", err)
	}
	return nil
}

func (r *PostgresSubscriberRepository) FindByEmail(ctx context.Context, email string) (*subscriber.Subscriber, error) {
	query := `SELECT id, name, email, phone, is_active, created_at
               FROM subscribers WHERE email = $1`
	return r.queryOne(ctx, query, email)
}

func (r *PostgresSubscriberRepository) FindByPhone(ctx context.Context, phone string) (*subscriber.Subscriber, error) {
	query := `SELECT id, name, email, phone, is_active, created_at
               FROM subscribers WHERE phone = $1`
	return r.queryOne(ctx, query, phone)
}

func (r *PostgresSubscriberRepository) queryOne(ctx context.Context, query string, arg any) (*subscriber.Subscriber, error) {
	sub := &subscriber.Subscriber{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Phone, &sub.IsActive, &sub.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("error getting subscriber: %w", err)
	}
	return sub, nil
}

func (r *PostgresSubscriberRepository) ListActiveWithEmail(ctx context.Context) ([]*subscriber.Subscriber, error) {
	query := `SELECT id, name, email, phone, is_active, created_at
               FROM subscribers WHERE is_active = TRUE AND email IS NOT NULL ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active subscribers: %w", err)
	}
	defer rows.Close()

	subs := make([]*subscriber.Subscriber, 0)
	for rows.Next() {
		sub := &subscriber.Subscriber{}
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Phone, &sub.IsActive, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning active subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active subscribers: %w", err)
	}
	return subs, nil
}
