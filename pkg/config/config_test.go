package config

import (
    "os"
    "path/filepath"
    "testing"
)

func writeConfig(t *testing.T, body string) string {
    t.Helper()
    dir := t.TempDir()
    path := filepath.Join(dir, "config.yaml")
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }
    return path
}

func TestLoadAppliesDefaults(t *testing.T) {
    path := writeConfig(t, `
environment: test
fred:
  api_key: abc
`)
    c, err := Load(path)
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if c.FRED.BaseURL != "https://api.stlouisfed.org/fred" {
        t.Fatalf("unexpected base url %s", c.FRED.BaseURL)
    }
    if c.FRED.ObservationWindow != 12 {
        t.Fatalf("unexpected window %d", c.FRED.ObservationWindow)
    }
    if c.Report.FilePrefix != "economic_report" {
        t.Fatalf("unexpected prefix %s", c.Report.FilePrefix)
    }
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
    path := writeConfig(t, `
environment: test
`)
    if _, err := Load(path); err == nil {
        t.Fatalf("expected validation error")
    }
}

func TestLoadRejectsKafkaWithoutTopic(t *testing.T) {
    path := writeConfig(t, `
environment: test
fred:
  api_key: abc
kafka:
  brokers: ["localhost:9092"]
`)
    if _, err := Load(path); err == nil {
        t.Fatalf("expected validation error")
    }
}

func TestLoadWithEnvOverrides(t *testing.T) {
    path := writeConfig(t, `
environment: test
fred:
  api_key: abc
kafka:
  report_topic: analysis.reports
`)
    t.Setenv("FRED_API_KEY", "from-env")
    t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
    t.Setenv("SERVER_PORT", "9999")
    t.Setenv("FRED_RATE_PER_SEC", "3.5")

    c, err := LoadWithEnv(path)
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if c.FRED.APIKey != "from-env" {
        t.Fatalf("env override not applied: %s", c.FRED.APIKey)
    }
    if len(c.Kafka.Brokers) != 2 {
        t.Fatalf("unexpected brokers %v", c.Kafka.Brokers)
    }
    if c.Server.Port != 9999 {
        t.Fatalf("unexpected port %d", c.Server.Port)
    }
    if c.FRED.RateLimit.RefillPerSec != 3.5 {
        t.Fatalf("unexpected refill rate %f", c.FRED.RateLimit.RefillPerSec)
    }
}

func TestLoadWithEnvSuppliesAPIKey(t *testing.T) {
    path := writeConfig(t, `
environment: test
`)
    t.Setenv("FRED_API_KEY", "env-only")

    c, err := LoadWithEnv(path)
    if err != nil {
        t.Fatalf("key from env must satisfy validation: %v", err)
    }
    if c.FRED.APIKey != "env-only" {
        t.Fatalf("unexpected key %s", c.FRED.APIKey)
    }
}
