package collector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"BreakoutSniper/internal/model"
)

const defaultDataBaseURL = "https://data.alpaca.markets"

// AlpacaFetcher implements Fetcher against the Alpaca market data API.
type AlpacaFetcher struct {
	client *resty.Client
}

type alpacaBar struct {
	Time   time.Time `json:"t"`
	Open   float64   `json:"o"`
	High   float64   `json:"h"`
	Low    float64   `json:"l"`
	Close  float64   `json:"c"`
	Volume float64   `json:"v"`
}

type alpacaBarsResponse struct {
	Bars          map[string][]alpacaBar `json:"bars"`
	NextPageToken string                 `json:"next_page_token"`
}

// NewAlpacaFetcher creates a fetcher using the given API credentials.
// An empty baseURL selects the production data endpoint.
func NewAlpacaFetcher(baseURL, apiKey, secretKey string) *AlpacaFetcher {
	if baseURL == "" {
		baseURL = defaultDataBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("APCA-API-KEY-ID", apiKey).
		SetHeader("APCA-API-SECRET-KEY", secretKey).
		SetTimeout(60 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second)
	return &AlpacaFetcher{client: client}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// FetchDailyBars pulls daily bars for a batch of symbols, following
// pagination until the response is exhausted.
func (f *AlpacaFetcher) FetchDailyBars(ctx context.Context, symbols []string, daysBack int) (map[string][]model.OHLCV, error) {
	start := time.Now().UTC().AddDate(0, 0, -daysBack)
	out := make(map[string][]model.OHLCV, len(symbols))

	pageToken := ""
	for {
		var body alpacaBarsResponse
		req := f.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"symbols":    strings.Join(symbols, ","),
				"timeframe":  "1Day",
				"adjustment": "split",
				"start":      start.Format(time.RFC3339),
				"limit":      "10000",
			}).
			SetResult(&body)
		if pageToken != "" {
			req.SetQueryParam("page_token", pageToken)
		}
		resp, err := req.Get("/v2/stocks/bars")
		if err != nil {
			return nil, fmt.Errorf("fetch bars: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
		}
		for sym, bars := range body.Bars {
			for _, b := range bars {
				out[sym] = append(out[sym], model.OHLCV{
					Time:   b.Time,
					Open:   b.Open,
					High:   b.High,
					Low:    b.Low,
					Close:  b.Close,
					Volume: b.Volume,
				})
			}
		}
		if body.NextPageToken == "" {
			break
		}
		pageToken = body.NextPageToken
	}

	// Paginated pages can interleave; make each series chronological.
	for sym := range out {
		bars := out[sym]
		sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	}
	return out, nil
}
