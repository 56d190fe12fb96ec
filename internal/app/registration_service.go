// internal/app/registration_service.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	netmail "net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"daily_quran_service/internal/domain/subscriber"
	idb "daily_quran_service/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// E.164-like: optional +, leading nonzero digit, 2-15 digits total.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

const conflictMessage = "User already exists with this email or phone number"

// RegisterInput is the raw registration request. Empty strings mean absent.
type RegisterInput struct {
	Name  string
	Email string
	Phone string
}

// RegistrationService validates and persists new subscribers.
type RegistrationService struct {
	subs   subscriber.Repository
	logger *logrus.Logger
}

func NewRegistrationService(subs subscriber.Repository, logger *logrus.Logger) *RegistrationService {
	return &RegistrationService{subs: subs, logger: logger}
}

// Register creates exactly one new subscriber record. No email is sent
// synchronously; the first verse arrives at the next scheduled dispatch.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*subscriber.Subscriber, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)

	if err := validateInput(name, email, phone); err != nil {
		return nil, err
	}

	if email != "" {
		if err := s.checkContactFree(ctx, "email", email, s.subs.FindByEmail); err != nil {
			return nil, err
		}
	}
	if phone != "" {
		if err := s.checkContactFree(ctx, "phone", phone, s.subs.FindByPhone); err != nil {
			return nil, err
		}
	}

	sub := &subscriber.Subscriber{
		ID:        uuid.New(),
		Name:      name,
		Email:     sql.NullString{String: email, Valid: email != ""},
		Phone:     sql.NullString{String: phone, Valid: phone != ""},
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		if err == idb.ErrDuplicateContact {
			// A concurrent registration won the race; the unique index caught it.
			return nil, &ConflictError{Message: conflictMessage}
		}
		s.logger.WithError(err).Error("Failed to persist new subscriber")
		return nil, fmt.Errorf("failed to register subscriber: %w", err)
	}

	s.logger.WithField("subscriber_id", sub.ID).Info("New subscriber registered")
	return sub, nil
}

func validateInput(name, email, phone string) error {
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return &ValidationError{Message: fmt.Sprintf("name must be between %d and %d characters", minNameLength, maxNameLength)}
	}
	if email == "" && phone == "" {
		return &ValidationError{Message: "either email or phone is required"}
	}
	if email != "" {
		addr, err := netmail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return &ValidationError{Message: "invalid email address"}
		}
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return &ValidationError{Message: "invalid phone number"}
	}
	return nil
}

type contactLookup func(ctx context.Context, value string) (*subscriber.Subscriber, error)

// checkContactFree enforces uniqueness independently on one contact field.
func (s *RegistrationService) checkContactFree(ctx context.Context, field, value string, lookup contactLookup) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return &ConflictError{Message: conflictMessage}
	}
	if err != idb.ErrSubscriberNotFound {
		s.logger.WithError(err).Errorf("Failed to check existing subscriber by %s", field)
		return fmt.Errorf("failed to check existing subscriber by %s: %w", field, err)
	}
	return nil
}
