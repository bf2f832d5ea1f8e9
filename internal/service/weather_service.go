package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"ava-assistant/config"

	"github.com/sirupsen/logrus"
)

// WeatherReport is the condition signal consumed by the risk estimator.
type WeatherReport struct {
	City        string  `json:"city"`
	Description string  `json:"description"`
	TempCelsius float64 `json:"temp_celsius"`
}

// WeatherService fetches the current condition for a city. Failures are
// advisory: callers degrade to an inline warning and an empty description.
type WeatherService interface {
	CurrentByCity(ctx context.Context, city string) (*WeatherReport, error)
}

type weatherService struct {
	baseURL     string
	apiKey      string
	defaultCity string
	httpClient  *http.Client
	log         *logrus.Logger
}

func NewWeatherService(cfg config.WeatherConfig, log *logrus.Logger) WeatherService {
	return &weatherService{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		defaultCity: cfg.DefaultCity,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         log,
	}
}

// weatherAPIResponse mirrors the OpenWeather current-weather payload.
type weatherAPIResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Name string `json:"name"`
}

func (s *weatherService) CurrentByCity(ctx context.Context, city string) (*WeatherReport, error) {
	if city == "" {
		city = s.defaultCity
	}

	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		s.baseURL, url.QueryEscape(city), url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warnf("Weather lookup failed for %s: %+v", city, err)
		return nil, fmt.Errorf("weather request for %s: %w", city, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warnf("Weather API returned status %d for %s", resp.StatusCode, city)
		return nil, fmt.Errorf("weather api status %d for %s", resp.StatusCode, city)
	}

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	report := &WeatherReport{
		City:        city,
		TempCelsius: payload.Main.Temp,
	}
	if payload.Name != "" {
		report.City = payload.Name
	}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
	}

	return report, nil
}
