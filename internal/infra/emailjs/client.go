// Package emailjs implements the mail.Sender interface against the EmailJS
// REST API (send-by-template).
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"daily_quran_service/internal/domain/mail"
)

const sendPath = "/api/v1.0/email/send"

// Ensure Client implements mail.Sender
var _ mail.Sender = (*Client)(nil)

type Client struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	http       *http.Client
}

func NewClient(baseURL, serviceID, templateID, publicKey, privateKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		privateKey: privateKey,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken"`
	TemplateParams templateParams `json:"template_params"`
}

// templateParams carries the variables the mail template expands.
type templateParams struct {
	ToName               string `json:"to_name"`
	ToEmail              string `json:"to_email"`
	Subject              string `json:"subject"`
	Arabic1              string `json:"arabic1"`
	English              string `json:"english"`
	SurahName            string `json:"surahName"`
	SurahNameTranslation string `json:"surahNameTranslation"`
	SurahNo              int    `json:"surahNo"`
	AyahNo               int    `json:"ayahNo"`
	TodayDate            string `json:"today_date"`
	UnsubscribeLink      string `json:"unsubscribe_link"`
	PreferencesLink      string `json:"preferences_link"`
	CurrentYear          int    `json:"current_year"`
}

func (c *Client) Send(ctx context.Context, p mail.MessagePayload) error {
	payload := sendRequest{
		ServiceID:   c.serviceID,
		TemplateID:  c.templateID,
		UserID:      c.publicKey,
		AccessToken: c.privateKey,
		TemplateParams: templateParams{
			ToName:               p.ToName,
			ToEmail:              p.ToEmail,
			Subject:              p.Subject,
			Arabic1:              p.Arabic,
			English:              p.English,
			SurahName:            p.SurahName,
			SurahNameTranslation: p.SurahNameTranslation,
			SurahNo:              p.SurahNo,
			AyahNo:               p.AyahNo,
			TodayDate:            p.TodayDate,
			UnsubscribeLink:      p.UnsubscribeLink,
			PreferencesLink:      p.PreferencesLink,
			CurrentYear:          p.CurrentYear,
		},
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("error building email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email to %s: %w", p.ToEmail, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		// EmailJS returns a short plain-text reason on failure.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email send to %s failed: %s: %s", p.ToEmail, resp.Status, bytes.TrimSpace(body))
	}
	return nil
}
