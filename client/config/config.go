// Package config holds the terminal client settings.
package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"shop-service/flagx"
	"shop-service/timex"
)

// Config holds runtime settings for the shop CLI.
//
// Fields:
//   - ServerURL: base URL of the shop API.
//   - RequestTimeout: deadline for every API call.
//   - LocalDBPath: SQLite file holding the token and the cart.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	LocalDBPath    string
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.LocalDBPath = "./shop_client.db"
}

// LoadConfig applies defaults, then the JSON file given with -c/-config,
// then command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LocalDBPath    string         `json:"local_db_path"`
}

func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := applyJson(cfg, data); err != nil {
		panic(err)
	}
}

func applyJson(cfg *Config, data []byte) error {
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	return nil
}

// parseFlags reads -a (server URL), -timeout and -db from os.Args.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-timeout", "-db"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "shop API base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LocalDBPath, "db", cfg.LocalDBPath, "local storage file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
