package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type SimConfig struct {
	StockCount      int
	FundCount       int
	Seed            int64
	MinuteEvery     time.Duration
	StartDay        int
	TimeLimitDays   int
	StartingBalance float64
	RunDays         int
}

type APIConfig struct {
	Addr string
	SimConfig
}

type CLIConfig struct {
	APIBaseURL string
	SimConfig
}

func LoadSimFromEnv() SimConfig {
	return SimConfig{
		StockCount:      envIntDefault("BOURSE_STOCK_COUNT", 20),
		FundCount:       envIntDefault("BOURSE_FUND_COUNT", 5),
		Seed:            envInt64Default("BOURSE_SEED", 0),
		MinuteEvery:     envDurationDefault("BOURSE_MINUTE_EVERY", time.Second),
		StartDay:        envIntDefault("BOURSE_START_DAY", 29),
		TimeLimitDays:   envIntDefault("BOURSE_TIME_LIMIT_DAYS", 60),
		StartingBalance: envFloatDefault("BOURSE_STARTING_BALANCE", 10_000),
		RunDays:         envIntDefault("BOURSE_RUN_DAYS", 0),
	}
}

func LoadAPIFromEnv() APIConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("BOURSE_API_ADDR", ":8080")
	}
	return APIConfig{Addr: addr, SimConfig: LoadSimFromEnv()}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("BRS_API_BASE_URL", "http://localhost:8080"), "/"),
		SimConfig:  LoadSimFromEnv(),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
