package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tartampluch/go-ctfcal/internal/config"
)

var (
	// ErrRemoteFetch is returned when the event source answers with a non-200 status.
	ErrRemoteFetch = errors.New(config.ErrRemoteFetch)

	// ErrMalformedResponse is returned when the listing cannot be decoded into events.
	ErrMalformedResponse = errors.New(config.ErrMalformed)
)

// EventFetcher defines the contract for retrieving the raw event listing.
// This interface allows for mocking in tests and decoupling from the network layer.
type EventFetcher interface {
	Fetch(ctx context.Context, window Window) ([]RawEvent, error)
}

// HTTPFetcher implements EventFetcher against the CTFtime events API.
type HTTPFetcher struct {
	Client    *http.Client
	Endpoint  string
	UserAgent string
	Limit     int
}

// NewHTTPFetcher creates an HTTPFetcher from the runtime settings.
func NewHTTPFetcher(s *config.Settings) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: s.HTTPTimeout,
		},
		Endpoint:  s.Endpoint,
		UserAgent: s.UserAgent,
		Limit:     config.ResultLimit,
	}
}

// Fetch issues a single GET for the window and decodes the listing.
// Records beyond Limit are never requested.
func (f *HTTPFetcher) Fetch(ctx context.Context, window Window) ([]RawEvent, error) {
	u, err := url.Parse(f.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	q := u.Query()
	q.Set(config.QueryLimit, strconv.Itoa(f.Limit))
	q.Set(config.QueryStart, strconv.FormatInt(window.Start.Unix(), 10))
	q.Set(config.QueryFinish, strconv.FormatInt(window.Finish.Unix(), 10))
	u.RawQuery = q.Encode()

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)

	log.DebugContext(ctx, config.MsgFetchStart,
		slog.Int64(config.LogKeyStart, window.Start.Unix()),
		slog.Int64(config.LogKeyFinish, window.Finish.Unix()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequest, err)
	}

	req.Header.Set(config.HeaderUserAgent, f.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn(config.MsgFetchBadCode,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %d %s", ErrRemoteFetch, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	events, err := decodeEvents(io.LimitReader(resp.Body, config.MaxHTTPResponseSize))
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgFetchDone, slog.Int(config.LogKeyFetched, len(events)))
	return events, nil
}

// decodeEvents reads a JSON array of events. Any decoding failure, including
// a missing field on a single record, rejects the whole listing.
func decodeEvents(r io.Reader) ([]RawEvent, error) {
	var events []RawEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if events == nil {
		// A literal JSON null is not a listing.
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, "listing is null")
	}
	return events, nil
}
