package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
)

const currencyServiceName = "exchange-rate-api"

type ConversionResult struct {
	OriginalAmount   float64 `json:"originalAmount"`
	OriginalCurrency string  `json:"originalCurrency"`
	ConvertedAmount  float64 `json:"convertedAmount"`
	TargetCurrency   string  `json:"targetCurrency"`
	ExchangeRate     float64 `json:"exchangeRate"`
	Fallback         bool    `json:"fallback"`
}

type RatesResult struct {
	Base     string             `json:"base"`
	Date     string             `json:"date,omitempty"`
	Rates    map[string]float64 `json:"rates"`
	Fallback bool               `json:"fallback"`
}

type currencyConverter struct {
	baseURL string
	client  *http.Client
}

func NewCurrencyConverter(baseURL string, client *http.Client) CurrencyConverter {
	return &currencyConverter{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type latestRatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (c *currencyConverter) latest(ctx context.Context, base string) (*latestRatesResponse, error) {
	logger.ExternalServiceCall(currencyServiceName, "latest", "base", base)

	var out latestRatesResponse
	err := getJSON(ctx, c.client, c.baseURL+"/latest/"+url.PathEscape(base), &out)
	if err == nil && out.Rates == nil {
		err = fmt.Errorf("response has no rates")
	}
	logger.ExternalServiceResult(currencyServiceName, "latest", err, "base", base)
	if err != nil {
		return nil, domain.ExternalService(currencyServiceName, err)
	}
	return &out, nil
}

// rate returns the from->to rate or an error when it cannot be determined.
func (c *currencyConverter) rate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}
	latest, err := c.latest(ctx, from)
	if err != nil {
		return 0, err
	}
	r, ok := latest.Rates[to]
	if !ok {
		return 0, domain.ExternalService(currencyServiceName, fmt.Errorf("no rate for %s", to))
	}
	return r, nil
}

func (c *currencyConverter) Convert(ctx context.Context, amount float64, from, to string) ConversionResult {
	from, to = normalizeCurrency(from), normalizeCurrency(to)
	result := ConversionResult{
		OriginalAmount:   amount,
		OriginalCurrency: from,
		TargetCurrency:   to,
	}

	r, err := c.rate(ctx, from, to)
	if err != nil {
		logger.WarnContext(ctx, "Currency conversion fell back to original amount", "from", from, "to", to, "error", err)
		result.ConvertedAmount = amount
		result.ExchangeRate = 1
		result.Fallback = true
		return result
	}
	result.ConvertedAmount = amount * r
	result.ExchangeRate = r
	return result
}

func (c *currencyConverter) Rate(ctx context.Context, from, to string) float64 {
	r, err := c.rate(ctx, normalizeCurrency(from), normalizeCurrency(to))
	if err != nil {
		return 1
	}
	return r
}

func (c *currencyConverter) Rates(ctx context.Context, base string) RatesResult {
	base = normalizeCurrency(base)
	latest, err := c.latest(ctx, base)
	if err != nil {
		return RatesResult{Base: base, Rates: map[string]float64{}, Fallback: true}
	}
	return RatesResult{Base: base, Date: latest.Date, Rates: latest.Rates}
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
