package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"daily_quran_service/internal/app"
	"daily_quran_service/internal/domain/subscriber"
	"daily_quran_service/internal/domain/verse"
	"daily_quran_service/internal/infra/quran"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// RegistrationService is the slice of the application layer the register
// endpoint needs.
type RegistrationService interface {
	Register(ctx context.Context, in app.RegisterInput) (*subscriber.Subscriber, error)
}

type Handler struct {
	verses       verse.Provider
	registration RegistrationService
	logger       *logrus.Logger
}

func NewHandler(verses verse.Provider, registration RegistrationService, logger *logrus.Logger) *Handler {
	return &Handler{
		verses:       verses,
		registration: registration,
		logger:       logger,
	}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "Daily Dose of Quran API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// verseJSON mirrors the content source's field names, which the clients of
// this API already consume.
type verseJSON struct {
	SurahName            string `json:"surahName"`
	SurahNameTranslation string `json:"surahNameTranslation"`
	SurahNo              int    `json:"surahNo"`
	AyahNo               int    `json:"ayahNo"`
	Arabic1              string `json:"arabic1"`
	English              string `json:"english"`
}

func toVerseJSON(v *verse.Verse) verseJSON {
	return verseJSON{
		SurahName:            v.SurahName,
		SurahNameTranslation: v.SurahNameTranslation,
		SurahNo:              v.SurahNo,
		AyahNo:               v.AyahNo,
		Arabic1:              v.Arabic,
		English:              v.English,
	}
}

func (h *Handler) RandomVerse(w http.ResponseWriter, r *http.Request) {
	v, err := h.verses.Random(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Random verse endpoint error")
		respondError(w, http.StatusInternalServerError, "Failed to fetch random verse")
		return
	}
	respondData(w, http.StatusOK, toVerseJSON(v))
}

func (h *Handler) SpecificVerse(w http.ResponseWriter, r *http.Request) {
	surahNo, err1 := strconv.Atoi(chi.URLParam(r, "surahNo"))
	ayahNo, err2 := strconv.Atoi(chi.URLParam(r, "ayahNo"))
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "Invalid surah or ayah number")
		return
	}

	v, err := h.verses.Specific(r.Context(), surahNo, ayahNo)
	if err != nil {
		if errors.Is(err, quran.ErrVerseNotFound) {
			respondError(w, http.StatusNotFound, "Verse not found")
			return
		}
		h.logger.WithError(err).Error("Specific verse endpoint error")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondData(w, http.StatusOK, toVerseJSON(v))
}

// RegisterRequest represents the JSON body for registering a subscriber.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type subscriberJSON struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	sub, err := h.registration.Register(r.Context(), app.RegisterInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		var validationErr *app.ValidationError
		var conflictErr *app.ConflictError
		switch {
		case errors.As(err, &validationErr):
			respondError(w, http.StatusBadRequest, validationErr.Message)
		case errors.As(err, &conflictErr):
			respondError(w, http.StatusConflict, conflictErr.Message)
		default:
			h.logger.WithError(err).Error("Registration error")
			respondError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "User registered successfully",
		Data: subscriberJSON{
			ID:    sub.ID.String(),
			Name:  sub.Name,
			Email: nullableString(sub.Email),
			Phone: nullableString(sub.Phone),
		},
	})
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
