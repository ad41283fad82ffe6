package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `Toll operations dashboard gateway.

Usage:
  dashboard [flags]

Flags:
  -config-path string   Path to the config yaml file (default "config.yaml")
  -help                 Show this message

Configuration is read from the yaml file and the environment; see
config/config.go for the full list of variables.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig dumps the effective configuration at startup. Secrets are
// masked.
func PrintConfig(cfg *Config) {
	fmt.Println("configuration:")
	fmt.Printf("  app:       name=%s port=%s log_level=%s\n", cfg.App.Name, cfg.App.Port, cfg.App.LogLevel)
	fmt.Printf("  upstream:  base_url=%s timeout=%s\n", cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	fmt.Printf("  session:   store=%s cookie_max_age=%s\n", cfg.Session.Store, cfg.Session.CookieMaxAge)
	fmt.Printf("  database:  host=%s port=%s user=%s database=%s password=***\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Database)
	fmt.Printf("  rabbitmq:  enabled=%t host=%s port=%s user=%s password=***\n",
		cfg.RabbitMQ.Enabled, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User)
}
