package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"oilscraper/internal/api"
	"oilscraper/internal/scrape"
)

// Runner sequences one scraping run: authenticate, list providers, scrape
// them all concurrently, then report the run timing. Loop repeats it on a
// fixed interval until the context is canceled.
type Runner struct {
	api      *api.Client
	scraper  *scrape.Scraper
	interval time.Duration
	log      zerolog.Logger
}

func New(client *api.Client, scraper *scrape.Scraper, interval time.Duration, log zerolog.Logger) *Runner {
	return &Runner{api: client, scraper: scraper, interval: interval, log: log}
}

// RunOnce executes a single run. Authentication and listing failures abort
// the run; per-provider failures are contained inside their own task and
// never affect siblings or the final run report.
func (r *Runner) RunOnce(ctx context.Context) error {
	run := api.Run{StartTime: time.Now()}

	if err := r.api.Login(ctx); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	refs, err := r.api.ListProviders(ctx)
	if err != nil {
		return fmt.Errorf("fetch providers: %w", err)
	}

	g := new(errgroup.Group)
	for _, ref := range refs {
		g.Go(func() error {
			// errors stop at the task boundary so one provider can
			// never cancel the others
			r.scrapeProvider(ctx, ref.ID)
			return nil
		})
	}
	_ = g.Wait()

	run.EndTime = time.Now()
	if err := r.api.ReportRun(ctx, run); err != nil {
		r.log.Warn().Err(err).Msg("failed to report scraping run")
	}
	return nil
}

func (r *Runner) scrapeProvider(ctx context.Context, id int64) {
	p, err := r.api.GetProvider(ctx, id)
	if err != nil {
		r.log.Error().Err(err).Int64("provider_id", id).Msg("failed to fetch provider")
		return
	}

	res := r.scraper.Scrape(ctx, p)
	if res.Outcome != scrape.Found {
		// already logged by the scraper
		return
	}

	ok, err := r.api.AddPrice(ctx, p.ID, res.Price)
	if err != nil {
		r.log.Error().Err(err).Str("provider", p.Name).Msg("failed to add price for provider")
		return
	}
	if !ok {
		r.log.Warn().Str("provider", p.Name).Msg("failed to add price for provider")
		return
	}
	if err := r.api.TouchLastAccessed(ctx, p.ID); err != nil {
		r.log.Warn().Err(err).Str("provider", p.Name).Msg("failed to update last accessed")
	}
	r.log.Info().Str("provider", p.Name).Float64("price", res.Price).Msg("price added for provider")
}

// Loop runs forever on the configured interval. A failed run is logged and
// retried on the next tick; each iteration re-authenticates from scratch.
func (r *Runner) Loop(ctx context.Context) {
	for {
		r.log.Info().Msg("starting scraping run")
		if err := r.RunOnce(ctx); err != nil {
			r.log.Error().Err(err).Msg("scraping run failed")
		} else {
			r.log.Info().Dur("interval", r.interval).Msg("scrape finished, sleeping")
		}

		t := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}
