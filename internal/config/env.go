package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AllowedPageSizes are the page sizes the list views may request.
var AllowedPageSizes = []int{10, 20, 50, 100}

type Env struct {
	APIBaseURL    string
	APIToken      string
	TokenFile     string
	Timeout       time.Duration
	PageSize      int
	WatchInterval time.Duration
}

// LoadEnv reads client configuration from the environment. A .env file in
// the working directory is loaded first when present; real env vars win.
func LoadEnv() Env {
	_ = godotenv.Load()

	baseURL := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return Env{
		APIBaseURL:    baseURL,
		APIToken:      strings.TrimSpace(os.Getenv("API_TOKEN")),
		TokenFile:     strings.TrimSpace(os.Getenv("API_TOKEN_FILE")),
		Timeout:       time.Duration(envInt("API_TIMEOUT_SECONDS", 30)) * time.Second,
		PageSize:      ClampPageSize(envInt("PAGE_SIZE", 20)),
		WatchInterval: time.Duration(envInt("WATCH_INTERVAL_SECONDS", 5)) * time.Second,
	}
}

// ClampPageSize snaps n to the nearest allowed page size (defaults to 20
// when n is not positive).
func ClampPageSize(n int) int {
	if n <= 0 {
		return 20
	}
	best := AllowedPageSizes[0]
	for _, s := range AllowedPageSizes {
		if abs(n-s) < abs(n-best) {
			best = s
		}
	}
	return best
}

// IsAllowedPageSize reports whether n is one of the enumerated sizes.
func IsAllowedPageSize(n int) bool {
	for _, s := range AllowedPageSizes {
		if n == s {
			return true
		}
	}
	return false
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
