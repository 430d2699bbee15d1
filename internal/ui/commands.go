package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/atmos/internal/locate"
	"github.com/five82/atmos/internal/summary"
	"github.com/five82/atmos/internal/weather"
)

// WeatherFetcher resolves a query into a snapshot, choosing the data source
// from apiKey.
type WeatherFetcher interface {
	FetchCurrentAndForecast(ctx context.Context, q weather.Query, apiKey string) (weather.Snapshot, error)
}

// SummaryFetcher returns a best-effort place summary. It never fails.
type SummaryFetcher interface {
	Fetch(ctx context.Context, name string) summary.Summary
}

// Locator answers "where am I".
type Locator interface {
	Locate(ctx context.Context) (locate.Position, error)
}

// Messages

type lookupDoneMsg struct {
	query weather.Query
	snap  weather.Snapshot
	err   error
}

type locateDoneMsg struct {
	pos locate.Position
	err error
}

type summaryMsg struct {
	gen    int
	result summary.Summary
}

type toastExpiredMsg struct {
	id int
}

// Commands

// lookupCmd fetches q with the key captured at request time.
func lookupCmd(ctx context.Context, fetcher WeatherFetcher, q weather.Query, apiKey string) tea.Cmd {
	return func() tea.Msg {
		if fetcher == nil {
			return lookupDoneMsg{query: q, err: weather.ErrNetwork}
		}
		snap, err := fetcher.FetchCurrentAndForecast(ctx, q, apiKey)
		return lookupDoneMsg{query: q, snap: snap, err: err}
	}
}

func locateCmd(ctx context.Context, locator Locator) tea.Cmd {
	return func() tea.Msg {
		if locator == nil {
			return locateDoneMsg{err: locate.ErrPermissionDenied}
		}
		pos, err := locator.Locate(ctx)
		return locateDoneMsg{pos: pos, err: err}
	}
}

// summaryCmd tags the result with the detail generation it was requested for.
func summaryCmd(ctx context.Context, fetcher SummaryFetcher, gen int, name string) tea.Cmd {
	return func() tea.Msg {
		if fetcher == nil {
			return summaryMsg{gen: gen, result: summary.Summary{Text: summary.Placeholder}}
		}
		return summaryMsg{gen: gen, result: fetcher.Fetch(ctx, name)}
	}
}

func toastExpireCmd(id int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Toast texts.
const (
	msgInvalidKey      = "Invalid API Key. Reverting to Demo Mode."
	msgKeyRemoved      = "API Key removed. Using Demo Mode."
	msgSettingsSaved   = "Settings Saved"
	msgLocationDenied  = "Location permission denied"
	msgLocationFailed  = "Location unavailable"
	msgCityNotFound    = "City not found"
	msgNetwork         = "Network error"
	msgUnexpected      = "Something went wrong"
	msgLinkCopied      = "Link copied to clipboard"
	msgNoLink          = "No link available"
	msgClipboardFailed = "Clipboard unavailable"
)

// userMessage maps a failure to toast text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, weather.ErrNotFound):
		return msgCityNotFound
	case errors.Is(err, weather.ErrNetwork):
		return msgNetwork
	case errors.Is(err, locate.ErrPermissionDenied):
		return msgLocationDenied
	case errors.Is(err, locate.ErrUnavailable):
		return msgLocationFailed
	case errors.Is(err, context.DeadlineExceeded):
		return msgNetwork
	default:
		return msgUnexpected
	}
}
