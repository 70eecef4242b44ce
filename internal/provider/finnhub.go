package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/logger"
)

const (
	finnhubBaseURL     = "https://finnhub.io/api/v1"
	finnhubTokenHeader = "X-Finnhub-Token"
	finnhubSearchLimit = 10
	defaultConcurrency = 8
	unknownCompanyName = "N/A"
)

// finnhubQuote is the /quote payload: c current, d change, dp percent change.
type finnhubQuote struct {
	Current       *float64 `json:"c"`
	Change        *float64 `json:"d"`
	PercentChange *float64 `json:"dp"`
	High          *float64 `json:"h"`
	Low           *float64 `json:"l"`
	Open          *float64 `json:"o"`
	PreviousClose *float64 `json:"pc"`
	Timestamp     int64    `json:"t"`
}

type finnhubSearch struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

type finnhubProfile struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
}

// FinnhubOptions configures a Finnhub client.
type FinnhubOptions struct {
	APIKey      string
	BaseURL     string        // defaults to the public API
	CacheTTL    time.Duration // zero disables quote caching
	Concurrency int           // parallel /quote requests per batch
	Fallback    BatchQuoter   // optional second source for failed symbols
}

// Finnhub fetches quotes, symbol searches and company profiles from Finnhub.
// It never retries; a failed symbol degrades to a zero placeholder.
type Finnhub struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	ttl         time.Duration
	concurrency int
	fallback    BatchQuoter
	now         func() time.Time
	log         *zap.SugaredLogger

	mu    sync.RWMutex
	cache map[string]Quote
}

// NewFinnhub creates a Finnhub client using httpClient for all requests.
func NewFinnhub(httpClient *http.Client, opts FinnhubOptions) *Finnhub {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = finnhubBaseURL
	}
	conc := opts.Concurrency
	if conc <= 0 {
		conc = defaultConcurrency
	}
	return &Finnhub{
		httpClient:  httpClient,
		apiKey:      opts.APIKey,
		baseURL:     base,
		ttl:         opts.CacheTTL,
		concurrency: conc,
		fallback:    opts.Fallback,
		now:         time.Now,
		log:         logger.Named("finnhub"),
		cache:       make(map[string]Quote),
	}
}

// Name returns the provider's display name.
func (p *Finnhub) Name() string { return "Finnhub" }

// FetchQuotes returns one quote per distinct non-blank symbol, in first-seen
// order. Symbols that fail are looked up once in the fallback source, if
// any, and otherwise returned as zero-price placeholders.
func (p *Finnhub) FetchQuotes(ctx context.Context, symbols []string) []Quote {
	tickers := distinctSymbols(symbols)
	if len(tickers) == 0 {
		return []Quote{}
	}

	quotes := make([]Quote, len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, ticker := range tickers {
		if q, ok := p.cached(ticker); ok {
			quotes[i] = q
			continue
		}
		g.Go(func() error {
			q, err := p.fetchQuote(gctx, ticker)
			if err != nil {
				p.log.Warnw("quote fetch failed", "symbol", ticker, "error", err)
				quotes[i] = placeholder(ticker)
				return nil
			}
			p.store(q)
			quotes[i] = q
			return nil
		})
	}
	_ = g.Wait()

	p.fillFromFallback(ctx, quotes)
	return quotes
}

func (p *Finnhub) fillFromFallback(ctx context.Context, quotes []Quote) {
	if p.fallback == nil {
		return
	}
	var missing []string
	for _, q := range quotes {
		if !q.Known() {
			missing = append(missing, q.Symbol)
		}
	}
	if len(missing) == 0 {
		return
	}

	found, err := p.fallback.BatchQuotes(ctx, missing)
	if err != nil {
		p.log.Warnw("fallback quote fetch failed", "symbols", missing, "error", err)
	}
	for i, q := range quotes {
		if fq, ok := found[q.Symbol]; ok && !q.Known() {
			quotes[i] = fq
			p.store(fq)
		}
	}
}

// SearchSymbols looks up tickers matching query. At most ten matches are
// returned; entries without a symbol or description are skipped.
func (p *Finnhub) SearchSymbols(ctx context.Context, query string) ([]SymbolMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SymbolMatch{}, nil
	}

	var resp finnhubSearch
	if err := p.get(ctx, "/search", url.Values{"q": {query}}, &resp); err != nil {
		p.log.Warnw("symbol search failed", "query", query, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}

	matches := make([]SymbolMatch, 0, finnhubSearchLimit)
	for _, r := range resp.Result {
		if r.Symbol == "" || r.Description == "" {
			continue
		}
		matches = append(matches, SymbolMatch{Symbol: r.Symbol, Name: r.Description})
		if len(matches) == finnhubSearchLimit {
			break
		}
	}
	return matches, nil
}

// StockDetails fetches the company profile and quote for symbol concurrently.
// A failed profile leaves the name as "N/A"; a failed quote with a known
// name yields a zero-price quote; if both fail, ErrQuoteUnavailable.
func (p *Finnhub) StockDetails(ctx context.Context, symbol string) (*Quote, error) {
	ticker := strings.ToUpper(strings.TrimSpace(symbol))
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}

	var (
		profile    finnhubProfile
		profileErr error
		quote      Quote
		quoteErr   error
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		profileErr = p.get(ctx, "/stock/profile2", url.Values{"symbol": {ticker}}, &profile)
	}()
	go func() {
		defer wg.Done()
		quote, quoteErr = p.fetchQuote(ctx, ticker)
	}()
	wg.Wait()

	name := unknownCompanyName
	if profileErr != nil {
		p.log.Warnw("company profile fetch failed", "symbol", ticker, "error", profileErr)
	} else if profile.Name != "" {
		name = profile.Name
	}

	if quoteErr != nil {
		p.log.Warnw("quote fetch failed", "symbol", ticker, "error", quoteErr)
		if name == unknownCompanyName {
			return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, quoteErr)
		}
		q := placeholder(ticker)
		q.CompanyName = name
		return &q, nil
	}

	quote.CompanyName = name
	return &quote, nil
}

func (p *Finnhub) fetchQuote(ctx context.Context, ticker string) (Quote, error) {
	var raw finnhubQuote
	if err := p.get(ctx, "/quote", url.Values{"symbol": {ticker}}, &raw); err != nil {
		return Quote{}, err
	}
	return Quote{
		Symbol:        ticker,
		CurrentPrice:  floatOrZero(raw.Current),
		ChangePercent: floatOrZero(raw.PercentChange),
		FetchedAt:     p.now().UTC(),
	}, nil
}

// get performs a GET against the API and decodes a JSON body into out.
// The API key goes in the X-Finnhub-Token header, never in the URL.
func (p *Finnhub) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := p.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Symbol: params.Get("symbol"), Endpoint: path, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(finnhubTokenHeader, p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &FetchError{Symbol: params.Get("symbol"), Endpoint: path, Err: fmt.Errorf("http request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Symbol: params.Get("symbol"), Endpoint: path, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Symbol: params.Get("symbol"), Endpoint: path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func (p *Finnhub) cached(ticker string) (Quote, bool) {
	if p.ttl <= 0 {
		return Quote{}, false
	}
	p.mu.RLock()
	q, ok := p.cache[ticker]
	p.mu.RUnlock()
	if !ok || p.now().Sub(q.FetchedAt) >= p.ttl {
		return Quote{}, false
	}
	return q, true
}

// store caches real prices only, so placeholders are refetched next time.
func (p *Finnhub) store(q Quote) {
	if p.ttl <= 0 || !q.Known() {
		return
	}
	p.mu.Lock()
	p.cache[q.Symbol] = q
	p.mu.Unlock()
}

func distinctSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		t := strings.ToUpper(strings.TrimSpace(s))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func floatOrZero(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}
