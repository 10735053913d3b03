package es

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

func (c ClientConfig) validate() error {
	if len(c.Addresses) == 0 {
		return fmt.Errorf("elasticsearch config has no addresses")
	}
	if c.IndexName == "" {
		return fmt.Errorf("elasticsearch config has no index name")
	}
	return nil
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
