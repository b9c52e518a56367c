package scrape

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"oilscraper/internal/api"
)

// Doer executes HTTP requests.
//
//go:generate mockgen -package=scrape_test -destination=mock_doer_test.go -source=scrape.go Doer
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Outcome classifies a scrape attempt.
type Outcome int

const (
	// Found means Result.Price holds a positive, parsed price.
	Found Outcome = iota
	// FetchFailed means the provider page could not be fetched.
	FetchFailed
	// NoElement means the page had no match for the provider's selector.
	NoElement
	// ParseFailed means the element text did not normalize to a number.
	ParseFailed
	// NonPositive means the price parsed but is zero or negative.
	NonPositive
)

// Result is the outcome of scraping one provider. It is never an error:
// every failure mode is local to the provider and already logged.
type Result struct {
	Outcome Outcome
	Price   float64
	Err     error
}

// Scraper fetches a provider's page and extracts its price.
type Scraper struct {
	client Doer
	log    zerolog.Logger
}

func New(client Doer, log zerolog.Logger) *Scraper {
	return &Scraper{client: client, log: log}
}

// Scrape fetches p.URL, selects the first element matching p.HTMLElement and
// normalizes its text content.
func (s *Scraper) Scrape(ctx context.Context, p api.Provider) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		s.log.Error().Err(err).Str("provider", p.Name).Msg("failed to build page request")
		return Result{Outcome: FetchFailed, Err: err}
	}
	resp, err := s.client.Do(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("provider", p.Name).Msg("failed to scrape provider")
		return Result{Outcome: FetchFailed, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Error().Int("status", resp.StatusCode).Str("provider", p.Name).Msg("failed to scrape provider")
		return Result{Outcome: FetchFailed, Err: fmt.Errorf("fetch %s: status %d", p.URL, resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		s.log.Error().Err(err).Str("provider", p.Name).Msg("failed to parse provider page")
		return Result{Outcome: FetchFailed, Err: err}
	}

	el := doc.Find(p.HTMLElement).First()
	if el.Length() == 0 {
		s.log.Warn().Str("provider", p.Name).Str("selector", p.HTMLElement).Msg("no price found for provider")
		return Result{Outcome: NoElement}
	}

	price, err := NormalizePrice(el.Text())
	if err != nil {
		s.log.Error().Err(err).Str("provider", p.Name).Msg("error processing price for provider")
		return Result{Outcome: ParseFailed, Err: err}
	}
	if price <= 0 {
		s.log.Warn().Float64("price", price).Str("provider", p.Name).Msg("ignoring non-positive price")
		return Result{Outcome: NonPositive, Price: price}
	}
	return Result{Outcome: Found, Price: price}
}
