// checkprice fetches a single page and prints the price found with the given
// CSS selector. Handy for validating a provider's selector before adding it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"oilscraper/internal/api"
	"oilscraper/internal/httpx"
	"oilscraper/internal/logger"
	"oilscraper/internal/scrape"
)

func main() {
	var timeout int
	flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: checkprice [flags] <url> <css-selector>")
		os.Exit(2)
	}
	url, selector := flag.Arg(0), flag.Arg(1)

	log := logger.New()
	client := httpx.New(time.Duration(timeout) * time.Second)
	s := scrape.New(client, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	res := s.Scrape(ctx, api.Provider{Name: url, URL: url, HTMLElement: selector})
	switch res.Outcome {
	case scrape.Found, scrape.NonPositive:
		fmt.Printf("%g\n", res.Price)
	default:
		os.Exit(1)
	}
}
