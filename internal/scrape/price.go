package scrape

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a price string that could not be normalized.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse price %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Replacement order matters: the currency suffix and the ",-" marker go
// first, then "." (thousands separator) is dropped, then the decimal comma
// becomes a decimal point.
var priceReplacer = strings.NewReplacer(
	"kr.", "",
	",-", "",
	".", "",
	",", ".",
	" ", "",
)

// NormalizePrice converts Danish-formatted price text (e.g. "12.345,-kr.",
// "9,99 kr.") to a float. Zero and negative values are returned as-is; the
// caller decides whether they count as a valid price.
func NormalizePrice(raw string) (float64, error) {
	s := strings.TrimSpace(priceReplacer.Replace(raw))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Raw: raw, Err: err}
	}
	return v, nil
}
