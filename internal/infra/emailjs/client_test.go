package emailjs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"daily_quran_service/internal/domain/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() mail.MessagePayload {
	return mail.MessagePayload{
		ToName:               "Aisha",
		ToEmail:              "aisha@example.com",
		Subject:              " Daily Quran Verse - Al-Faatiha 1:2",
		Arabic:               "الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
		English:              "[All] praise is [due] to Allah, Lord of the worlds.",
		SurahName:            "Al-Faatiha",
		SurahNameTranslation: "The Opening",
		SurahNo:              1,
		AyahNo:               2,
		TodayDate:            "Monday, January 5, 2026",
		UnsubscribeLink:      "http://localhost:3000/unsubscribe?email=aisha%40example.com",
		PreferencesLink:      "http://localhost:3000/preferences",
		CurrentYear:          2026,
	}
}

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "service_x", body.ServiceID)
		assert.Equal(t, "template_y", body.TemplateID)
		assert.Equal(t, "pub_key", body.UserID)
		assert.Equal(t, "priv_key", body.AccessToken)
		assert.Equal(t, "aisha@example.com", body.TemplateParams.ToEmail)
		assert.Equal(t, "Aisha", body.TemplateParams.ToName)
		assert.Equal(t, 1, body.TemplateParams.SurahNo)
		assert.Equal(t, 2, body.TemplateParams.AyahNo)
		assert.Equal(t, "Monday, January 5, 2026", body.TemplateParams.TodayDate)
		assert.Equal(t, 2026, body.TemplateParams.CurrentYear)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service_x", "template_y", "pub_key", "priv_key")
	err := c.Send(context.Background(), samplePayload())

	assert.NoError(t, err)
}

func TestSend_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("API calls are disabled for non-browser applications"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service_x", "template_y", "pub_key", "priv_key")
	err := c.Send(context.Background(), samplePayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "aisha@example.com")
	assert.Contains(t, err.Error(), "403")
}

func TestSend_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	c := NewClient(srv.URL, "service_x", "template_y", "pub_key", "priv_key")
	err := c.Send(context.Background(), samplePayload())

	assert.Error(t, err)
}
