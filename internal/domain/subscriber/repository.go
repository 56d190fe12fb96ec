package subscriber

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Subscriber entities.
type Repository interface {
	Create(ctx context.Context, sub *Subscriber) error
	// FindByEmail and FindByPhone match against all subscribers, active or not.
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	FindByPhone(ctx context.Context, phone string) (*Subscriber, error)
	// ListActiveWithEmail returns active subscribers that have an email address,
	// the only delivery channel the dispatch job implements.
	ListActiveWithEmail(ctx context.Context) ([]*Subscriber, error)
}
