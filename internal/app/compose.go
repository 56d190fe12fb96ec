package app

import (
	"fmt"
	"net/url"
	"time"

	"daily_quran_service/internal/domain/mail"
	"daily_quran_service/internal/domain/subscriber"
	"daily_quran_service/internal/domain/verse"
)

// ComposeDailyVerse maps a (verse, subscriber) pair into a fully-populated
// message payload. Pure function: every subscriber in a run receives the same
// verse but an individually addressed payload.
func ComposeDailyVerse(v *verse.Verse, sub *subscriber.Subscriber, now time.Time, clientURL string) mail.MessagePayload {
	email := sub.Email.String
	return mail.MessagePayload{
		ToName:               sub.Name,
		ToEmail:              email,
		Subject:              fmt.Sprintf(" Daily Quran Verse - %s %d:%d", v.SurahName, v.SurahNo, v.AyahNo),
		Arabic:               v.Arabic,
		English:              v.English,
		SurahName:            v.SurahName,
		SurahNameTranslation: v.SurahNameTranslation,
		SurahNo:              v.SurahNo,
		AyahNo:               v.AyahNo,
		TodayDate:            now.Format("Monday, January 2, 2006"),
		UnsubscribeLink:      clientURL + "/unsubscribe?email=" + url.QueryEscape(email),
		PreferencesLink:      clientURL + "/preferences",
		CurrentYear:          now.Year(),
	}
}
