package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/kevserarslan/car-rental-management/internal/logger"
)

const (
	vehicleServiceName = "nhtsa-vpic"
	maxMakes           = 50
)

type VehicleMetadata struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	VehicleType  string `json:"vehicleType"`
	FuelType     string `json:"fuelType"`
	Transmission string `json:"transmission"`
	Fallback     bool   `json:"fallback"`
}

type vehicleLookup struct {
	baseURL string
	client  *http.Client
}

func NewVehicleLookup(baseURL string, client *http.Client) VehicleLookup {
	return &vehicleLookup{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type vpicResponse struct {
	Count   int          `json:"Count"`
	Results []vpicResult `json:"Results"`
}

type vpicResult struct {
	MakeName        string `json:"Make_Name"`
	ModelName       string `json:"Model_Name"`
	VehicleTypeName string `json:"VehicleTypeName"`
}

func (v *vehicleLookup) fetch(ctx context.Context, operation, path string) ([]vpicResult, error) {
	logger.ExternalServiceCall(vehicleServiceName, operation, "path", path)
	var out vpicResponse
	err := getJSON(ctx, v.client, v.baseURL+path, &out)
	logger.ExternalServiceResult(vehicleServiceName, operation, err, "results", len(out.Results))
	if err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (v *vehicleLookup) Metadata(ctx context.Context, vehicleMake, model string, year int) VehicleMetadata {
	path := fmt.Sprintf("/GetModelsForMakeYear/make/%s/modelyear/%d?format=json", url.PathEscape(vehicleMake), year)
	results, err := v.fetch(ctx, "models_for_make_year", path)
	if err != nil || len(results) == 0 {
		logger.WarnContext(ctx, "Using default vehicle metadata", "make", vehicleMake, "model", model, "year", year)
		return defaultVehicleMetadata(vehicleMake, model, year)
	}

	match := results[0]
	needle := strings.ToLower(model)
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.ModelName), needle) {
			match = r
			break
		}
	}
	return VehicleMetadata{
		Make:         vehicleMake,
		Model:        match.ModelName,
		Year:         year,
		VehicleType:  match.VehicleTypeName,
		FuelType:     "Gasoline",
		Transmission: "Automatic",
	}
}

func (v *vehicleLookup) Makes(ctx context.Context) []string {
	results, err := v.fetch(ctx, "all_makes", "/GetAllMakes?format=json")
	if err != nil {
		return []string{}
	}
	if len(results) > maxMakes {
		results = results[:maxMakes]
	}
	makes := make([]string, 0, len(results))
	for _, r := range results {
		makes = append(makes, r.MakeName)
	}
	sort.Strings(makes)
	return makes
}

func (v *vehicleLookup) Models(ctx context.Context, vehicleMake string) []string {
	results, err := v.fetch(ctx, "models_for_make", "/GetModelsForMake/"+url.PathEscape(vehicleMake)+"?format=json")
	if err != nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(results))
	models := make([]string, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.ModelName]; ok {
			continue
		}
		seen[r.ModelName] = struct{}{}
		models = append(models, r.ModelName)
	}
	sort.Strings(models)
	return models
}

func defaultVehicleMetadata(vehicleMake, model string, year int) VehicleMetadata {
	return VehicleMetadata{
		Make:         vehicleMake,
		Model:        model,
		Year:         year,
		VehicleType:  "Unknown",
		FuelType:     "Gasoline",
		Transmission: "Automatic",
		Fallback:     true,
	}
}
