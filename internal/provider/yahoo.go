package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	yahooBaseURL  = "https://query1.finance.yahoo.com/v7/finance/quote"
	yahooBatchMax = 50
	yahooUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooQuoteResponse is the top-level Yahoo Finance API response.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuoteResult `json:"result"`
		Error  *json.RawMessage   `json:"error"`
	} `json:"quoteResponse"`
}

// yahooQuoteResult is a single quote result from Yahoo Finance.
type yahooQuoteResult struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
}

// Yahoo fetches batch quotes from Yahoo Finance. It backs up Finnhub for
// symbols whose Finnhub quote failed.
type Yahoo struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

// NewYahoo creates a Yahoo Finance quote source. An empty baseURL uses the
// public endpoint.
func NewYahoo(httpClient *http.Client, baseURL string) *Yahoo {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &Yahoo{httpClient: httpClient, baseURL: baseURL, now: time.Now}
}

// Name returns the provider's display name.
func (p *Yahoo) Name() string { return "Yahoo Finance" }

// BatchQuotes fetches quotes for symbols in batches of up to fifty. Only
// symbols with a non-zero price are present in the result; a failed batch
// is reported as a FetchError and the remaining batches still run.
func (p *Yahoo) BatchQuotes(ctx context.Context, symbols []string) (map[string]Quote, error) {
	quotes := make(map[string]Quote, len(symbols))
	var firstErr error

	for i := 0; i < len(symbols); i += yahooBatchMax {
		end := min(i+yahooBatchMax, len(symbols))
		if err := p.fetchBatch(ctx, symbols[i:end], quotes); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return quotes, firstErr
}

func (p *Yahoo) fetchBatch(ctx context.Context, tickers []string, into map[string]Quote) error {
	joined := strings.Join(tickers, ",")
	endpoint := p.baseURL + "?symbols=" + url.QueryEscape(joined)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Symbol: joined, Endpoint: "yahoo quote", Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &FetchError{Symbol: joined, Endpoint: "yahoo quote", Err: fmt.Errorf("http request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Symbol: joined, Endpoint: "yahoo quote", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var quoteResp yahooQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		return &FetchError{Symbol: joined, Endpoint: "yahoo quote", Err: fmt.Errorf("decoding response: %w", err)}
	}

	now := p.now().UTC()
	for _, r := range quoteResp.QuoteResponse.Result {
		if r.Symbol == "" || r.RegularMarketPrice == 0 {
			continue
		}
		name := r.LongName
		if name == "" {
			name = r.ShortName
		}
		symbol := strings.ToUpper(r.Symbol)
		into[symbol] = Quote{
			Symbol:        symbol,
			CurrentPrice:  decimal.NewFromFloat(r.RegularMarketPrice),
			ChangePercent: decimal.NewFromFloat(r.RegularMarketChangePercent).Round(4),
			CompanyName:   name,
			FetchedAt:     now,
		}
	}
	return nil
}
