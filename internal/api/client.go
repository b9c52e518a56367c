package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client talks to the scraping-run API. All methods except Login require a
// token; they fail fast with ErrNotAuthenticated instead of sending an
// unauthenticated request.
type Client struct {
	http  *resty.Client
	creds Credentials
	log   zerolog.Logger
}

// NewClient builds a Client for baseURL. hc may be nil, in which case resty's
// default transport is used.
func NewClient(baseURL string, creds Credentials, hc *http.Client, log zerolog.Logger) *Client {
	rc := resty.New()
	if hc != nil {
		rc = resty.NewWithClient(hc)
	}
	rc.SetBaseURL(strings.TrimRight(baseURL, "/"))
	rc.SetHeader("User-Agent", "oil-scraper/1.0")
	return &Client{http: rc, creds: creds, log: log}
}

type loginRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Login exchanges the client credentials for a token and attaches it to the
// client. Any previous token is discarded first, so a failed login leaves the
// client unauthenticated.
func (c *Client) Login(ctx context.Context) error {
	c.creds.Token = nil
	c.http.SetAuthToken("")

	var tok Token
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{ClientID: c.creds.ClientID, ClientSecret: c.creds.ClientSecret}).
		SetResult(&tok).
		Post("/auth/login")
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return &AuthError{Status: res.StatusCode(), Message: strings.TrimSpace(string(res.Body()))}
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
	c.creds.Token = &tok
	c.http.SetAuthScheme(tok.TokenType)
	c.http.SetAuthToken(tok.AccessToken)
	c.log.Debug().Msg("authenticated")
	return nil
}

func (c *Client) authed() error {
	if c.creds.Token == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// ListProviders enumerates the providers scheduled for scraping. The listing
// carries partial records; callers re-fetch the full record by id.
func (c *Client) ListProviders(ctx context.Context) ([]ProviderRef, error) {
	if err := c.authed(); err != nil {
		return nil, err
	}
	var refs []ProviderRef
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&refs).
		Get("/scraping_runs/providers")
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &FetchError{Resource: "providers", Status: res.StatusCode()}
	}
	return refs, nil
}

// GetProvider fetches the full provider record by id.
func (c *Client) GetProvider(ctx context.Context, id int64) (Provider, error) {
	if err := c.authed(); err != nil {
		return Provider{}, err
	}
	var p Provider
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&p).
		Get(fmt.Sprintf("/providers/%d", id))
	if err != nil {
		return Provider{}, fmt.Errorf("get provider %d: %w", id, err)
	}
	if res.StatusCode() != http.StatusOK {
		return Provider{}, &FetchError{Resource: fmt.Sprintf("provider %d", id), Status: res.StatusCode()}
	}
	return p, nil
}

// AddPrice posts a scraped price for a provider. It reports acceptance, not
// transport success: a non-2xx response is a false return, not an error.
func (c *Client) AddPrice(ctx context.Context, providerID int64, price float64) (bool, error) {
	if err := c.authed(); err != nil {
		return false, err
	}
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]float64{"price": price}).
		Post(fmt.Sprintf("/providers/%d/prices", providerID))
	if err != nil {
		return false, fmt.Errorf("add price for provider %d: %w", providerID, err)
	}
	return res.StatusCode() == http.StatusOK || res.StatusCode() == http.StatusCreated, nil
}

// TouchLastAccessed marks the provider's last-accessed timestamp. Callers
// treat a failure as log-worthy only; the price is already stored.
func (c *Client) TouchLastAccessed(ctx context.Context, providerID int64) error {
	if err := c.authed(); err != nil {
		return err
	}
	res, err := c.http.R().
		SetContext(ctx).
		Put(fmt.Sprintf("/providers/%d/last_accessed", providerID))
	if err != nil {
		return fmt.Errorf("touch last accessed for provider %d: %w", providerID, err)
	}
	if res.IsError() {
		return &FetchError{Resource: fmt.Sprintf("provider %d last_accessed", providerID), Status: res.StatusCode()}
	}
	return nil
}

type runReport struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ReportRun posts the timing summary for one completed run.
func (c *Client) ReportRun(ctx context.Context, run Run) error {
	if err := c.authed(); err != nil {
		return err
	}
	body := runReport{
		StartTime: run.StartTime.Format(time.RFC3339),
		EndTime:   run.EndTime.Format(time.RFC3339),
	}
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/scraping_runs")
	if err != nil {
		return fmt.Errorf("report run: %w", err)
	}
	if res.IsError() {
		return &FetchError{Resource: "scraping run", Status: res.StatusCode()}
	}
	return nil
}
