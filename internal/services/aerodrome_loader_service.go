package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aeroportal/flightops/internal/db/repositories"
	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/metrics"
	gormModels "aeroportal/flightops/internal/models/gorm"
)

// rawAerodrome is one value of the mwgg/Airports JSON object, keyed by ICAO.
type rawAerodrome struct {
	ICAO      string  `json:"icao"`
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Elevation int     `json:"elevation"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TZ        string  `json:"tz"`
}

// AerodromeLoaderService imports aerodrome reference data.
type AerodromeLoaderService struct {
	repo       *repositories.AerodromeRepository
	directory  *AerodromeDirectoryService
	metrics    *metrics.MetricsRegistry
	httpClient *http.Client
	sourceURL  string
}

func NewAerodromeLoaderService(
	repo *repositories.AerodromeRepository,
	directory *AerodromeDirectoryService,
	metricsReg *metrics.MetricsRegistry,
	sourceURL string,
) *AerodromeLoaderService {
	return &AerodromeLoaderService{
		repo:       repo,
		directory:  directory,
		metrics:    metricsReg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		sourceURL:  sourceURL,
	}
}

// LoadFromJSON replaces the aerodrome table with the records in reader.
// Records without an ICAO code, a name, or a 4-letter code are skipped.
func (s *AerodromeLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	var rawData map[string]rawAerodrome
	if err := json.NewDecoder(reader).Decode(&rawData); err != nil {
		return 0, flightops.InvalidInput("aerodrome JSON is malformed: %v", err)
	}
	if len(rawData) == 0 {
		return 0, flightops.InvalidInput("no aerodrome data found in JSON")
	}

	aerodromes := make([]gormModels.Aerodrome, 0, len(rawData))
	for _, raw := range rawData {
		ad := gormModels.Aerodrome{
			ICAO:        normalizeICAO(raw.ICAO),
			IATA:        strings.ToUpper(strings.TrimSpace(raw.IATA)),
			Name:        strings.TrimSpace(raw.Name),
			City:        strings.TrimSpace(raw.City),
			Country:     strings.TrimSpace(raw.Country),
			ElevationFt: raw.Elevation,
			Latitude:    raw.Lat,
			Longitude:   raw.Lon,
			Timezone:    strings.TrimSpace(raw.TZ),
		}
		if len(ad.ICAO) != 4 || ad.Name == "" {
			continue
		}
		if len(ad.IATA) > 3 {
			ad.IATA = ""
		}
		aerodromes = append(aerodromes, ad)
	}

	if len(aerodromes) == 0 {
		return 0, flightops.InvalidInput("no valid aerodromes found after parsing")
	}

	if err := s.repo.ReplaceAll(ctx, aerodromes); err != nil {
		return 0, fmt.Errorf("failed to store aerodromes: %w", err)
	}
	s.directory.Invalidate()
	s.metrics.AerodromesImportedLast.Set(float64(len(aerodromes)))

	logging.Info("Aerodromes imported", "parsed", len(rawData), "stored", len(aerodromes))
	return len(aerodromes), nil
}

// LoadFromSource downloads the configured mwgg/Airports file and imports it.
func (s *AerodromeLoaderService) LoadFromSource(ctx context.Context) (int, error) {
	if s.sourceURL == "" {
		return 0, fmt.Errorf("no aerodrome source URL configured")
	}
	logging.Info("Fetching aerodromes", "url", s.sourceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch aerodromes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch aerodromes: HTTP %d", resp.StatusCode)
	}

	return s.LoadFromJSON(ctx, resp.Body)
}

func (s *AerodromeLoaderService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
