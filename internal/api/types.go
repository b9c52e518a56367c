package api

import "time"

// Token is the bearer credential returned by the login endpoint.
// It is replaced wholesale on every re-authentication.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Credentials holds the client credentials and, once Login succeeds,
// the Token attached for the current run.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Token        *Token
}

// ProviderRef is the partial record returned by the provider listing.
// Only the id is consumed; the full record is always re-fetched.
type ProviderRef struct {
	ID int64 `json:"id"`
}

// Provider is an oil-price listing source.
type Provider struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	HTMLElement  string `json:"html_element"`
	LastAccessed string `json:"last_accessed"`
}

// Run bounds one full scrape cycle.
type Run struct {
	StartTime time.Time
	EndTime   time.Time
}
