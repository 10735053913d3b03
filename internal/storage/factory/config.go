package factory

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/callbench/internal/storage"
	"github.com/DjordjeVuckovic/callbench/internal/storage/es"
	"github.com/DjordjeVuckovic/callbench/internal/storage/pg"
	"github.com/DjordjeVuckovic/callbench/pkg/utils"
)

const DefaultJSONStorePath = "bench-history.jsonl"

type StorageConfig struct {
	storage.Type
	JSONPath string
	Pg       *pg.PoolConfig
	Es       *es.ClientConfig
}

// LoadEnv reads the history store settings. An unset STORAGE_TYPE selects
// storage.None.
func LoadEnv() (*StorageConfig, error) {
	return ConfigFor(storage.Type(os.Getenv("STORAGE_TYPE")))
}

// ConfigFor builds the settings of one store type from the environment.
func ConfigFor(storageType storage.Type) (*StorageConfig, error) {
	if storageType == "" {
		storageType = storage.None
	}
	if !slices.Contains(storage.Types, storageType) {
		return nil, fmt.Errorf("invalid STORAGE_TYPE value %q, expected one of %v", storageType, storage.Types)
	}

	cfg := &StorageConfig{Type: storageType}
	switch storageType {
	case storage.JSON:
		cfg.JSONPath = os.Getenv("JSON_STORE_PATH")
		if cfg.JSONPath == "" {
			cfg.JSONPath = DefaultJSONStorePath
		}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
		if cfg.Pg.ConnStr == "" {
			return nil, fmt.Errorf("PG_CONNECTION_STRING is not set")
		}
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: utils.RemoveEmptyStrings(strings.Split(os.Getenv("ES_ADDRESSES"), ",")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES or ES_INDEX_NAME is missing")
		}
	}

	return cfg, nil
}
