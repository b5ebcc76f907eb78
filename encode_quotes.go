package patrimoine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// overrideLine is one JSONL record of the manual dividend override table.
type overrideLine struct {
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"` // Rate is the annual dividend per share.
	Currency string  `json:"currency,omitempty"`
}

// DecodeOverrides decodes a JSONL stream of manual per-share dividend rates,
// keyed by asset name.
func DecodeOverrides(r io.Reader) (map[string]Money, error) {
	overrides := make(map[string]Money)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var o overrideLine
		if err := json.Unmarshal(lineBytes, &o); err != nil {
			return nil, fmt.Errorf("invalid override line %q: %w", string(lineBytes), err)
		}
		if o.Name == "" {
			return nil, fmt.Errorf("override line %q has no asset name", string(lineBytes))
		}
		overrides[o.Name] = M(o.Rate, o.Currency)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading overrides: %w", err)
	}
	return overrides, nil
}

// EncodeOverrides persists the dividend override table in JSONL format,
// alphabetically by asset name.
func EncodeOverrides(w io.Writer, overrides map[string]Money) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rate := overrides[name]
		data, err := json.Marshal(overrideLine{Name: name, Rate: rate.AsFloat(), Currency: rate.Currency()})
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write override for %q: %w", name, err)
		}
	}
	return nil
}

// quoteLine is one JSONL record of the quote book.
type quoteLine struct {
	Name     string  `json:"name,omitempty"`
	Ticker   string  `json:"ticker,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

// DecodeQuotes decodes a JSONL stream of manually entered prices into a
// QuoteBook. A line may carry a name, a ticker, or both.
func DecodeQuotes(r io.Reader) (*QuoteBook, error) {
	book := NewQuoteBook()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var q quoteLine
		if err := json.Unmarshal(lineBytes, &q); err != nil {
			return nil, fmt.Errorf("invalid quote line %q: %w", string(lineBytes), err)
		}
		if q.Name == "" && q.Ticker == "" {
			return nil, fmt.Errorf("quote line %q has neither name nor ticker", string(lineBytes))
		}
		price := M(q.Price, q.Currency)
		if q.Name != "" {
			book.SetByName(q.Name, price)
		}
		if q.Ticker != "" {
			book.SetByTicker(q.Ticker, price)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading quotes: %w", err)
	}
	return book, nil
}

// EncodeQuotes persists a quote book to an io.Writer in JSONL format, names
// first then tickers, each group alphabetically for canonical output.
func EncodeQuotes(w io.Writer, book *QuoteBook) error {
	write := func(q quoteLine) error {
		data, err := json.Marshal(q)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	names := make([]string, 0, len(book.byName))
	for name := range book.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := book.byName[name]
		if err := write(quoteLine{Name: name, Price: p.AsFloat(), Currency: p.Currency()}); err != nil {
			return fmt.Errorf("failed to write quote for %q: %w", name, err)
		}
	}

	tickers := make([]string, 0, len(book.byTicker))
	for ticker := range book.byTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	for _, ticker := range tickers {
		p := book.byTicker[ticker]
		if err := write(quoteLine{Ticker: ticker, Price: p.AsFloat(), Currency: p.Currency()}); err != nil {
			return fmt.Errorf("failed to write quote for %q: %w", ticker, err)
		}
	}
	return nil
}
