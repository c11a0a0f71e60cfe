package broker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"BreakoutSniper/internal/model"
)

const defaultPaperBaseURL = "https://paper-api.alpaca.markets"

// AlpacaBroker implements Broker against the Alpaca trading API.
type AlpacaBroker struct {
	client *resty.Client
}

// NewAlpacaBroker creates a broker client. An empty baseURL selects the
// paper trading endpoint.
func NewAlpacaBroker(baseURL, apiKey, secretKey string) *AlpacaBroker {
	if baseURL == "" {
		baseURL = defaultPaperBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("APCA-API-KEY-ID", apiKey).
		SetHeader("APCA-API-SECRET-KEY", secretKey).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second)
	return &AlpacaBroker{client: client}
}

func (b *AlpacaBroker) Name() string { return "alpaca" }

type alpacaAccount struct {
	Equity        string `json:"equity"`
	DaytradeCount int    `json:"daytrade_count"`
}

func (b *AlpacaBroker) Account(ctx context.Context) (Account, error) {
	var body alpacaAccount
	resp, err := b.client.R().SetContext(ctx).SetResult(&body).Get("/v2/account")
	if err != nil {
		return Account{}, fmt.Errorf("get account: %w", err)
	}
	if resp.IsError() {
		return Account{}, fmt.Errorf("get account: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	equity, err := strconv.ParseFloat(body.Equity, 64)
	if err != nil {
		return Account{}, fmt.Errorf("parse equity %q: %w", body.Equity, err)
	}
	return Account{Equity: equity, DayTradeCount: body.DaytradeCount}, nil
}

type alpacaPosition struct {
	Symbol       string `json:"symbol"`
	Qty          string `json:"qty"`
	UnrealizedPL string `json:"unrealized_pl"`
}

func (b *AlpacaBroker) Positions(ctx context.Context) ([]model.Position, error) {
	var body []alpacaPosition
	resp, err := b.client.R().SetContext(ctx).SetResult(&body).Get("/v2/positions")
	if err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get positions: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	positions := make([]model.Position, 0, len(body))
	for _, p := range body {
		qty, _ := strconv.ParseFloat(p.Qty, 64)
		pl, _ := strconv.ParseFloat(p.UnrealizedPL, 64)
		positions = append(positions, model.Position{Symbol: p.Symbol, Quantity: qty, UnrealizedPL: pl})
	}
	return positions, nil
}

type alpacaOrder struct {
	Symbol string `json:"symbol"`
	Side   string `json:"side"`
}

func (b *AlpacaBroker) OpenOrderSymbols(ctx context.Context) ([]string, error) {
	var body []alpacaOrder
	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"status": "open", "limit": "500"}).
		SetResult(&body).
		Get("/v2/orders")
	if err != nil {
		return nil, fmt.Errorf("get open orders: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get open orders: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	var symbols []string
	for _, o := range body {
		if o.Side == "buy" {
			symbols = append(symbols, o.Symbol)
		}
	}
	return symbols, nil
}

type bracketLeg struct {
	LimitPrice string `json:"limit_price,omitempty"`
	StopPrice  string `json:"stop_price,omitempty"`
}

type bracketOrderRequest struct {
	Symbol      string     `json:"symbol"`
	Qty         string     `json:"qty"`
	Side        string     `json:"side"`
	Type        string     `json:"type"`
	LimitPrice  string     `json:"limit_price"`
	TimeInForce string     `json:"time_in_force"`
	OrderClass  string     `json:"order_class"`
	TakeProfit  bracketLeg `json:"take_profit"`
	StopLoss    bracketLeg `json:"stop_loss"`
}

// SubmitBracket places a DAY limit buy with attached take-profit and
// stop-loss legs; unfilled entries expire at the close.
func (b *AlpacaBroker) SubmitBracket(ctx context.Context, plan model.PositionPlan) error {
	req := bracketOrderRequest{
		Symbol:      plan.Symbol,
		Qty:         strconv.FormatInt(plan.Quantity, 10),
		Side:        "buy",
		Type:        "limit",
		LimitPrice:  decimal.NewFromFloat(plan.EntryPrice).StringFixed(2),
		TimeInForce: "day",
		OrderClass:  "bracket",
		TakeProfit:  bracketLeg{LimitPrice: decimal.NewFromFloat(plan.TakeProfitPrice).StringFixed(2)},
		StopLoss:    bracketLeg{StopPrice: decimal.NewFromFloat(plan.StopPrice).StringFixed(2)},
	}
	resp, err := b.client.R().SetContext(ctx).SetBody(req).Post("/v2/orders")
	if err != nil {
		return fmt.Errorf("submit bracket %s: %w", plan.Symbol, err)
	}
	if resp.IsError() {
		return fmt.Errorf("submit bracket %s: status %d, body: %s", plan.Symbol, resp.StatusCode(), resp.String())
	}
	return nil
}
