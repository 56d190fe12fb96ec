// Package quran implements the verse.Provider interface against the Quran
// content API, which serves verse JSON at {base}/{surahNo}/{ayahNo}.json.
package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"daily_quran_service/internal/domain/verse"

	"github.com/sirupsen/logrus"
)

// ErrVerseNotFound is returned when the requested reference does not exist.
var ErrVerseNotFound = fmt.Errorf("verse not found")

// Fallback reference used when a random fetch fails (Al-Fatiha 1:2).
const (
	fallbackSurah = 1
	fallbackAyah  = 2
)

// Random ayah picks are capped at this value regardless of the surah's length,
// matching the content policy of the original dispatcher.
const randomAyahCap = 50

// ayahCounts holds the number of ayahs in each of the 114 surahs.
var ayahCounts = [114]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109, 123, 111, 43, 52, 99, 128,
	111, 110, 98, 135, 112, 78, 118, 64, 77, 227, 93, 88, 69, 60, 34, 30, 73,
	54, 45, 83, 182, 88, 75, 85, 54, 53, 89, 59, 37, 35, 38, 29, 18, 45, 60,
	49, 62, 55, 78, 96, 29, 22, 24, 13, 14, 11, 11, 18, 12, 12, 30, 52, 52,
	44, 28, 28, 20, 56, 40, 31, 50, 40, 46, 42, 29, 19, 36, 25, 22, 17, 19,
	26, 30, 20, 15, 21, 11, 8, 8, 19, 5, 8, 8, 11, 11, 8, 3, 9, 5, 4, 7, 3,
	6, 3, 5, 4, 5, 6,
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

func NewClient(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// verseResponse mirrors the content API's JSON document.
type verseResponse struct {
	SurahName            string `json:"surahName"`
	SurahNameTranslation string `json:"surahNameTranslation"`
	SurahNo              int    `json:"surahNo"`
	AyahNo               int    `json:"ayahNo"`
	Arabic1              string `json:"arabic1"`
	English              string `json:"english"`
}

// Specific fetches the verse at the given reference. References outside the
// known surah/ayah bounds are reported as not found without hitting the source.
func (c *Client) Specific(ctx context.Context, surahNo, ayahNo int) (*verse.Verse, error) {
	if surahNo < 1 || surahNo > len(ayahCounts) || ayahNo < 1 || ayahNo > ayahCounts[surahNo-1] {
		return nil, ErrVerseNotFound
	}

	url := fmt.Sprintf("%s/%d/%d.json", c.baseURL, surahNo, ayahNo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building verse request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching verse %d:%d: %w", surahNo, ayahNo, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVerseNotFound
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("verse fetch %d:%d failed: %s", surahNo, ayahNo, resp.Status)
	}

	var body verseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding verse %d:%d: %w", surahNo, ayahNo, err)
	}

	return &verse.Verse{
		SurahNo:              body.SurahNo,
		AyahNo:               body.AyahNo,
		SurahName:            body.SurahName,
		SurahNameTranslation: body.SurahNameTranslation,
		Arabic:               body.Arabic1,
		English:              body.English,
	}, nil
}

// Random fetches a uniformly chosen verse. On failure it retries exactly once
// with the fixed fallback reference; if the fallback also fails, the error is
// returned and the caller decides whether that is fatal.
func (c *Client) Random(ctx context.Context) (*verse.Verse, error) {
	surahNo, ayahNo := randomReference()

	v, err := c.Specific(ctx, surahNo, ayahNo)
	if err == nil {
		return v, nil
	}
	c.logger.WithError(err).Warnf("Failed to fetch verse %d:%d, falling back to %d:%d", surahNo, ayahNo, fallbackSurah, fallbackAyah)

	v, err = c.Specific(ctx, fallbackSurah, fallbackAyah)
	if err != nil {
		return nil, fmt.Errorf("fallback verse fetch failed: %w", err)
	}
	return v, nil
}

// randomReference chooses a surah uniformly in [1,114] and an ayah uniformly
// within that surah's valid range, capped at randomAyahCap.
func randomReference() (surahNo, ayahNo int) {
	surahNo = rand.Intn(len(ayahCounts)) + 1
	maxAyah := ayahCounts[surahNo-1]
	if maxAyah > randomAyahCap {
		maxAyah = randomAyahCap
	}
	ayahNo = rand.Intn(maxAyah) + 1
	return surahNo, ayahNo
}
