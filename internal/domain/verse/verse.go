package verse

import (
	"context"
	"fmt"
)

// Verse is an immutable value fetched from the content source. It is never persisted.
type Verse struct {
	SurahNo              int
	AyahNo               int
	SurahName            string
	SurahNameTranslation string
	Arabic               string
	English              string
}

// Reference returns the human-readable verse reference, e.g. "Al-Fatiha 1:2".
func (v *Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.SurahName, v.SurahNo, v.AyahNo)
}

// Provider defines an interface for fetching verse content.
// This decouples the application logic from the concrete content API client.
type Provider interface {
	// Random fetches a uniformly chosen verse, falling back once to a fixed
	// known-good reference on failure.
	Random(ctx context.Context) (*Verse, error)
	// Specific fetches the verse at the given reference.
	Specific(ctx context.Context, surahNo, ayahNo int) (*Verse, error)
}
