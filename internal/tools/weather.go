package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// coordinates is a latitude/longitude pair.
type coordinates struct {
	Lat float64
	Lon float64
}

// knownCities maps lowercase city names (Hebrew and English) to their
// coordinates. Unrecognized cities fall back to Tel Aviv.
var knownCities = map[string]coordinates{
	"תל אביב":       {32.0853, 34.7818},
	"tel aviv":      {32.0853, 34.7818},
	"ירושלים":       {31.7683, 35.2137},
	"jerusalem":     {31.7683, 35.2137},
	"חיפה":          {32.7940, 34.9896},
	"haifa":         {32.7940, 34.9896},
	"באר שבע":       {31.2530, 34.7915},
	"beer sheva":    {31.2530, 34.7915},
	"נתניה":         {32.3215, 34.8532},
	"netanya":       {32.3215, 34.8532},
	"אילת":          {29.5581, 34.9482},
	"eilat":         {29.5581, 34.9482},
	"ראשון לציון":   {31.9730, 34.7925},
	"rishon lezion": {31.9730, 34.7925},
	"אשדוד":         {31.8014, 34.6435},
	"ashdod":        {31.8014, 34.6435},
}

var defaultCity = coordinates{32.0853, 34.7818} // Tel Aviv

// weatherDescriptions maps WMO weather codes to Hebrew descriptions.
var weatherDescriptions = map[int]string{
	0:  "בהיר",
	1:  "בהיר בעיקר",
	2:  "מעונן חלקית",
	3:  "מעונן",
	45: "ערפל",
	48: "ערפל כפור",
	51: "טפטוף קל",
	53: "טפטוף",
	55: "טפטוף כבד",
	61: "גשם קל",
	63: "גשם",
	65: "גשם כבד",
	71: "שלג קל",
	73: "שלג",
	75: "שלג כבד",
	80: "ממטרים קלים",
	81: "ממטרים",
	82: "ממטרים עזים",
	95: "סופת רעמים",
	96: "סופת רעמים עם ברד",
	99: "סופת רעמים עם ברד כבד",
}

// CurrentWeather is the external service's current-conditions report.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

// WeatherClient queries an Open-Meteo compatible forecast API.
type WeatherClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWeatherClient creates a client against the public Open-Meteo API.
func NewWeatherClient() *WeatherClient {
	return &WeatherClient{
		baseURL:    "https://api.open-meteo.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWeatherClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at a local fake.
func NewWeatherClientWithBaseURL(baseURL string) *WeatherClient {
	return &WeatherClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches current conditions for the given coordinates.
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	url := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&current_weather=true", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var payload struct {
		CurrentWeather CurrentWeather `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding weather response: %w", err)
	}

	return &payload.CurrentWeather, nil
}

// resolveCity maps a free-text city name to coordinates, case-insensitively,
// falling back to the default locality.
func resolveCity(city string) coordinates {
	if coords, ok := knownCities[strings.ToLower(strings.TrimSpace(city))]; ok {
		return coords
	}
	return defaultCity
}

// weatherTip derives a context-appropriate advisory from the conditions.
func weatherTip(w *CurrentWeather) string {
	switch {
	case w.WeatherCode >= 61 && w.WeatherCode <= 82:
		return "ביום גשום כדאי לבדוק שהמרזבים פנויים ושאין הצפות בסביבת המונה."
	case w.Temperature >= 30:
		return "ביום חם מומלץ לשתות הרבה מים ולהשקות את הגינה בשעות הערב לחיסכון במים."
	case w.Temperature <= 10:
		return "ביום קר כדאי להגן על צנרת חשופה מפני קרה."
	default:
		return "מזג אוויר נוח - זמן טוב לבדוק את קריאת המונה."
	}
}

// getWeatherHandler resolves the city, queries the weather service and maps
// the result to a customer-facing summary. External failures become failure
// results, never faults.
func getWeatherHandler(client *WeatherClient) Handler {
	return func(ctx context.Context, args map[string]any) (ToolResult, error) {
		city := stringArg(args, "city")
		coords := resolveCity(city)

		if client == nil {
			client = NewWeatherClient()
		}

		current, err := client.Current(ctx, coords.Lat, coords.Lon)
		if err != nil {
			log.Printf("tools: weather lookup for %q: %v", city, err)
			return Failure("לא הצלחתי לקבל את מזג האוויר כרגע, נסו שוב מאוחר יותר"), nil
		}

		description, ok := weatherDescriptions[current.WeatherCode]
		if !ok {
			description = "לא ידוע"
		}

		return ToolResult{
			Success: true,
			Message: fmt.Sprintf("מזג האוויר ב%s: %s, %.1f°C, רוח %.1f קמ\"ש. %s",
				city, description, current.Temperature, current.WindSpeed, weatherTip(current)),
			Data: map[string]any{
				"city":        city,
				"temperature": current.Temperature,
				"windspeed":   current.WindSpeed,
				"description": description,
				"tip":         weatherTip(current),
			},
		}, nil
	}
}
