package mail

import "context"

// MessagePayload is a fully-populated, individually addressed message for the
// mail provider's template.
type MessagePayload struct {
	ToName               string
	ToEmail              string
	Subject              string
	Arabic               string
	English              string
	SurahName            string
	SurahNameTranslation string
	SurahNo              int
	AyahNo               int
	TodayDate            string
	UnsubscribeLink      string
	PreferencesLink      string
	CurrentYear          int
}

// Sender defines an interface for delivering a composed message.
type Sender interface {
	Send(ctx context.Context, payload MessagePayload) error
}
