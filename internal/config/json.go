package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON configuration
// files. Durations are written as strings ("24h", "30s").
type StructuredJSONConfig struct {
	App struct {
		Debug             bool     `json:"debug"`
		SessionSecret     string   `json:"session_secret"`
		SessionProtection string   `json:"session_protection"`
		SessionDuration   Duration `json:"session_duration"`
		SessionIssuer     string   `json:"session_issuer"`
		Version           string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		LoginRate       float64  `json:"login_rate"`
		LoginBurst      int      `json:"login_burst"`

		TrustProxyHeaders bool `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`

	Workers struct {
		LimiterSweepInterval Duration `json:"limiter_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Debug:             jsonCfg.App.Debug,
			SessionSecret:     jsonCfg.App.SessionSecret,
			SessionProtection: jsonCfg.App.SessionProtection,
			SessionDuration:   time.Duration(jsonCfg.App.SessionDuration),
			SessionIssuer:     jsonCfg.App.SessionIssuer,
			Version:           jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			LoginRate:       jsonCfg.Server.LoginRate,
			LoginBurst:      jsonCfg.Server.LoginBurst,

			TrustProxyHeaders: jsonCfg.Server.TrustProxyHeaders,
		},
		Workers: Workers{
			LimiterSweepInterval: time.Duration(jsonCfg.Workers.LimiterSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
