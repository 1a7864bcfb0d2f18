// Package config loads this service's configuration, grounded on
// app/config/config.go's YAML-plus-environment-override pattern.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// MongoConfig describes the persistent repository's MongoDB connection.
type MongoConfig struct {
	URI      string `yaml:"uri" json:"uri"`
	Database string `yaml:"database" json:"database"`
}

// RedisConfig describes the optional L2 search cache. Addr == "" disables
// Redis entirely (L1-only caching, matching the teacher's MVP fallback).
type RedisConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// MeilisearchConfig describes the optional supplemental town search index.
// Host == "" disables Meilisearch wiring entirely.
type MeilisearchConfig struct {
	Host   string `yaml:"host" json:"host"`
	APIKey string `yaml:"api_key" json:"api_key"`
}

// IngestConfig controls the upstream download + ingestion usecase.
type IngestConfig struct {
	UtfKenAllURL string `yaml:"utf_ken_all_url" json:"utf_ken_all_url"`
}

// Config is this service's top-level configuration, loaded once at process
// start the way app/config/config.go's package-level ParserCfg is.
type Config struct {
	Env        string            `yaml:"env" json:"env"`
	ListenAddr string            `yaml:"listen_addr" json:"listen_addr"`
	L1CacheSize int              `yaml:"l1_cache_size" json:"l1_cache_size"`
	Mongo       MongoConfig       `yaml:"mongo" json:"mongo"`
	Redis       RedisConfig       `yaml:"redis" json:"redis"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch" json:"meilisearch"`
	Ingest      IngestConfig      `yaml:"ingest" json:"ingest"`
}

// DefaultUtfKenAllURL is the public zip archive Japan Post publishes.
const DefaultUtfKenAllURL = "https://www.post.japanpost.jp/zipcode/dl/utf/zip/utf_ken_all.zip"

// C is the process-wide configuration, populated by Load. Mirrors the
// teacher's package-level var C ParserCfg.
var C Config

// Load reads path as YAML into C, then applies environment-variable
// overrides via viper for the deployment-sensitive fields, mirroring
// app/config/config.go's os.Getenv override step but routed through
// viper's AutomaticEnv with the POSTAL_ prefix (POSTAL_MONGO_URI,
// POSTAL_REDIS_ADDR, POSTAL_MEILISEARCH_HOST, POSTAL_UTF_KEN_ALL_URL).
func Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, &C); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("POSTAL")
	v.AutomaticEnv()

	if val := v.GetString("MONGO_URI"); val != "" {
		C.Mongo.URI = val
	}
	if val := v.GetString("REDIS_ADDR"); val != "" {
		C.Redis.Addr = val
	}
	if val := v.GetString("MEILISEARCH_HOST"); val != "" {
		C.Meilisearch.Host = val
	}
	if val := v.GetString("UTF_KEN_ALL_URL"); val != "" {
		C.Ingest.UtfKenAllURL = val
	}

	if C.Ingest.UtfKenAllURL == "" {
		C.Ingest.UtfKenAllURL = DefaultUtfKenAllURL
	}
	if C.L1CacheSize == 0 {
		C.L1CacheSize = 1000
	}

	return nil
}

// SearchTimeout bounds a single repository Search call.
func SearchTimeout() time.Duration { return 1500 * time.Millisecond }

// IngestTimeout bounds the whole download+parse+normalize+replace usecase.
func IngestTimeout() time.Duration { return 10 * time.Minute }
