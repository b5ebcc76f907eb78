package patrimoine

// QuoteBook holds the latest known market prices, keyed by asset name with a
// ticker fallback. A nil QuoteBook is valid and resolves nothing; consumers
// then fall back to cost-derived prices.
type QuoteBook struct {
	byName   map[string]Money
	byTicker map[string]Money
}

// NewQuoteBook creates an empty quote book.
func NewQuoteBook() *QuoteBook {
	return &QuoteBook{
		byName:   make(map[string]Money),
		byTicker: make(map[string]Money),
	}
}

// SetByName records a price under an asset display name.
func (q *QuoteBook) SetByName(name string, price Money) { q.byName[name] = price }

// SetByTicker records a price under a ticker symbol.
func (q *QuoteBook) SetByTicker(ticker string, price Money) { q.byTicker[ticker] = price }

// Lookup resolves a price by asset name first, then by ticker. It reports
// whether a price was found.
func (q *QuoteBook) Lookup(name, ticker string) (Money, bool) {
	if q == nil {
		return Money{}, false
	}
	if p, ok := q.byName[name]; ok {
		return p, true
	}
	if ticker != "" {
		if p, ok := q.byTicker[ticker]; ok {
			return p, true
		}
	}
	return Money{}, false
}

// Len returns the number of names and tickers quoted.
func (q *QuoteBook) Len() int {
	if q == nil {
		return 0
	}
	return len(q.byName) + len(q.byTicker)
}
