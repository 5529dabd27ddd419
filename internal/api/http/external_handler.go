package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/service"
)

const (
	defaultFromCurrency = "USD"
	defaultToCurrency   = "TRY"
)

// CurrencyHandler exposes the exchange rate collaborator. It never fails on an
// upstream outage; results carry a fallback flag instead.
type CurrencyHandler struct {
	converter service.CurrencyConverter
}

func NewCurrencyHandler(converter service.CurrencyConverter) *CurrencyHandler {
	return &CurrencyHandler{converter: converter}
}

func (h *CurrencyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	amount, err := queryFloat(r, "amount")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if amount < 0 {
		WriteError(w, r, domain.Validation("Amount must not be negative"))
		return
	}
	from := queryDefault(r, "from", defaultFromCurrency)
	to := queryDefault(r, "to", defaultToCurrency)
	Success(w, "Currency converted", h.converter.Convert(r.Context(), amount, from, to))
}

func (h *CurrencyHandler) Rates(w http.ResponseWriter, r *http.Request) {
	base := queryDefault(r, "base", defaultFromCurrency)
	Success(w, "Exchange rates retrieved", h.converter.Rates(r.Context(), base))
}

type rateResponse struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

func (h *CurrencyHandler) Rate(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(queryDefault(r, "from", defaultFromCurrency))
	to := strings.ToUpper(queryDefault(r, "to", defaultToCurrency))
	Success(w, "Exchange rate retrieved", rateResponse{
		From: from,
		To:   to,
		Rate: h.converter.Rate(r.Context(), from, to),
	})
}

type VehicleHandler struct {
	lookup service.VehicleLookup
}

func NewVehicleHandler(lookup service.VehicleLookup) *VehicleHandler {
	return &VehicleHandler{lookup: lookup}
}

func (h *VehicleHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vehicleMake := strings.TrimSpace(q.Get("make"))
	model := strings.TrimSpace(q.Get("model"))
	if vehicleMake == "" || model == "" {
		WriteError(w, r, domain.Validation("Query parameters make and model are required"))
		return
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year <= 0 {
		WriteError(w, r, domain.Validation("Invalid year: %s", q.Get("year")))
		return
	}
	Success(w, "Vehicle metadata retrieved", h.lookup.Metadata(r.Context(), vehicleMake, model, year))
}

func (h *VehicleHandler) Makes(w http.ResponseWriter, r *http.Request) {
	Success(w, "Vehicle makes retrieved", h.lookup.Makes(r.Context()))
}

func (h *VehicleHandler) Models(w http.ResponseWriter, r *http.Request) {
	Success(w, "Vehicle models retrieved", h.lookup.Models(r.Context(), pathVar(r, "make")))
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "UP", "database": "UP"}
	if err := h.db.PingContext(ctx); err != nil {
		logger.WarnContext(r.Context(), "Health check database ping failed", "error", err)
		status["status"] = "DOWN"
		status["database"] = "DOWN"
		WriteJSON(w, http.StatusServiceUnavailable, Response{Success: false, Message: "Service unhealthy", Data: status})
		return
	}
	Success(w, "Service healthy", status)
}
