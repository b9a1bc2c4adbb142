package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Fetcher retrieves a spreadsheet with its grid data.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Fetch(ctx context.Context, documentID string) (*sheets.Spreadsheet, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// ErrNoCredentials is returned by New when neither an API key nor a
// credentials file is configured.
var ErrNoCredentials = errors.New("no sheets credentials configured")

// Options configure the Sheets client.
type Options struct {
	APIKey          string
	CredentialsFile string
	// Endpoint overrides the API base URL, e.g. for a proxy or test server.
	Endpoint string
}

// Client talks to the Google Sheets API.
type Client struct {
	svc *sheets.Service
}

const (
	defaultUserAgent = "griddy/0.1"
	requestTimeout   = 20 * time.Second
)

// NewClient builds a Client. It fails with ErrNoCredentials when no
// credentials are configured.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	credsFile := strings.TrimSpace(opts.CredentialsFile)

	clientOpts := []option.ClientOption{
		option.WithUserAgent(defaultUserAgent),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	}
	switch {
	case credsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(credsFile))
	case apiKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(apiKey))
	default:
		return nil, ErrNoCredentials
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
	}

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	// Generated calls build the header from this field, not from WithUserAgent.
	svc.UserAgent = defaultUserAgent
	return &Client{svc: svc}, nil
}

// Fetch retrieves the spreadsheet identified by documentID, including the
// cell data of every sheet.
func (c *Client) Fetch(ctx context.Context, documentID string) (*sheets.Spreadsheet, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id := strings.TrimSpace(documentID)
	if id == "" {
		return nil, fmt.Errorf("document id required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	ss, err := c.svc.Spreadsheets.Get(id).IncludeGridData(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet %s: %w", id, err)
	}
	return ss, nil
}

// Message returns the text to show a user for err. API errors yield the
// provider's own message; anything else falls back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		return fmt.Sprintf("Sheets API returned status %d", apiErr.Code)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timed out loading spreadsheet"
	}
	return err.Error()
}
