// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"mellium.im/pubsubgw/jid"
)

// Config is the file representation of the client options.
//
//	jid: gateway@example.net/pubsub
//	request_timeout: 30s
//	max_pending: 100
type Config struct {
	JID            string        `yaml:"jid"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxPending     int           `yaml:"max_pending"`
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "pubsub: decoding config")
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, errors.Errorf("pubsub: negative request_timeout %s", cfg.RequestTimeout)
	}
	if cfg.MaxPending < 0 {
		return Config{}, errors.Errorf("pubsub: negative max_pending %d", cfg.MaxPending)
	}
	return cfg, nil
}

// Options returns the client options described by the config.
func (cfg Config) Options() ([]Option, error) {
	opts := []Option{
		Timeout(cfg.RequestTimeout),
		MaxPending(cfg.MaxPending),
	}
	if cfg.JID != "" {
		j, err := jid.Parse(cfg.JID)
		if err != nil {
			return nil, errors.Wrapf(err, "pubsub: bad jid %q in config", cfg.JID)
		}
		opts = append(opts, OwnJID(j))
	}
	return opts, nil
}
