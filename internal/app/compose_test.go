package app

import (
	"database/sql"
	"testing"
	"time"

	"daily_quran_service/internal/domain/subscriber"
	"daily_quran_service/internal/domain/verse"

	"github.com/stretchr/testify/assert"
)

func fatihaVerse() *verse.Verse {
	return &verse.Verse{
		SurahNo:              1,
		AyahNo:               2,
		SurahName:            "Al-Faatiha",
		SurahNameTranslation: "The Opening",
		Arabic:               "الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
		English:              "[All] praise is [due] to Allah, Lord of the worlds.",
	}
}

func TestComposeDailyVerse(t *testing.T) {
	sub := existingSubscriber("Aisha", "aisha@example.com", "", true)
	now := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC) // a Monday

	p := ComposeDailyVerse(fatihaVerse(), sub, now, "http://localhost:3000")

	assert.Equal(t, "Aisha", p.ToName)
	assert.Equal(t, "aisha@example.com", p.ToEmail)
	assert.Equal(t, " Daily Quran Verse - Al-Faatiha 1:2", p.Subject)
	assert.Equal(t, "Al-Faatiha", p.SurahName)
	assert.Equal(t, "The Opening", p.SurahNameTranslation)
	assert.Equal(t, 1, p.SurahNo)
	assert.Equal(t, 2, p.AyahNo)
	assert.NotEmpty(t, p.Arabic)
	assert.NotEmpty(t, p.English)
	assert.Equal(t, "Monday, January 5, 2026", p.TodayDate)
	assert.Equal(t, "http://localhost:3000/unsubscribe?email=aisha%40example.com", p.UnsubscribeLink)
	assert.Equal(t, "http://localhost:3000/preferences", p.PreferencesLink)
	assert.Equal(t, 2026, p.CurrentYear)
}

func TestComposeDailyVerse_EscapesUnsubscribeEmail(t *testing.T) {
	sub := existingSubscriber("Test", "user+daily@example.com", "", true)

	p := ComposeDailyVerse(fatihaVerse(), sub, time.Now(), "http://localhost:3000")

	assert.Equal(t, "http://localhost:3000/unsubscribe?email=user%2Bdaily%40example.com", p.UnsubscribeLink)
}

func TestComposeDailyVerse_IndividuallyAddressed(t *testing.T) {
	v := fatihaVerse()
	now := time.Now()
	a := &subscriber.Subscriber{Name: "Aisha", Email: sql.NullString{String: "aisha@example.com", Valid: true}}
	b := &subscriber.Subscriber{Name: "Omar", Email: sql.NullString{String: "omar@example.com", Valid: true}}

	pa := ComposeDailyVerse(v, a, now, "http://localhost:3000")
	pb := ComposeDailyVerse(v, b, now, "http://localhost:3000")

	// Same verse, individually addressed payloads.
	assert.Equal(t, pa.Arabic, pb.Arabic)
	assert.Equal(t, pa.Subject, pb.Subject)
	assert.NotEqual(t, pa.ToEmail, pb.ToEmail)
	assert.NotEqual(t, pa.UnsubscribeLink, pb.UnsubscribeLink)
}
