package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sikt-nva/fs-courses-api/internal/models"
)

const (
	teachingPath          = "undervisning"
	institutionQueryParam = "emne.institusjon"
	yearQueryParam        = "semester.ar"
	limitQueryParam       = "limit"
	unlimited             = "0"
)

// Outcome labels reported to a FetchObserver.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeBadStatus   = "bad_status"
	OutcomeMalformed   = "malformed_body"
)

// FetchObserver receives one observation per FS call.
type FetchObserver interface {
	ObserveFSFetch(institution int, outcome string, duration time.Duration)
}

// Client calls the FS REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	decoder    RecordDecoder
	observer   FetchObserver
}

// NewClient constructs a Client. A nil httpClient gets a default with the given timeout.
func NewClient(baseURL string, decoder RecordDecoder, httpClient *http.Client, observer FetchObserver) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient(0)
	}
	if decoder == nil {
		decoder = StructuredDecoder{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		decoder:    decoder,
		observer:   observer,
	}
}

// DefaultHTTPClient returns an http.Client with a bounded timeout.
func DefaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// Decoder returns the record decoder the client requests records for.
func (c *Client) Decoder() RecordDecoder {
	return c.decoder
}

// FetchTaughtCourses returns every teaching record of the institution in year.
// A single attempt is made.
func (c *Client) FetchTaughtCourses(ctx context.Context, inst models.InstitutionConfig, year int) ([]Record, error) {
	start := time.Now()
	records, outcome, err := c.fetch(ctx, inst, year)
	if c.observer != nil {
		c.observer.ObserveFSFetch(inst.Code, outcome, time.Since(start))
	}
	return records, err
}

func (c *Client) fetch(ctx context.Context, inst models.InstitutionConfig, year int) ([]Record, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.teachingURL(inst.Code, year), nil)
	if err != nil {
		return nil, OutcomeUnavailable, fmt.Errorf("%w: build request: %v", ErrUpstreamUnavailable, err)
	}
	req.SetBasicAuth(inst.Username, inst.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, OutcomeUnavailable, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, OutcomeBadStatus, &BadStatusError{StatusCode: resp.StatusCode}
	}

	var body CollectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, OutcomeMalformed, fmt.Errorf("%w: %v", ErrUpstreamMalformedBody, err)
	}
	return body.Items, OutcomeOK, nil
}

func (c *Client) teachingURL(institution, year int) string {
	q := c.decoder.QueryParams()
	q.Set(institutionQueryParam, strconv.Itoa(institution))
	q.Set(yearQueryParam, strconv.Itoa(year))
	q.Set(limitQueryParam, unlimited)
	return c.baseURL + "/" + teachingPath + "?" + q.Encode()
}
