package source

import (
	"context"
	"fmt"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/jmallek/domainwatch/internal/config"
	"github.com/rs/zerolog"
)

type etcdClient interface {
	Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error)
	Close() error
}

// EtcdSource lists watched domains from an etcd subtree. Each domain is one
// key under the configured prefix with a small JSON value; undecodable
// entries are skipped with a warning rather than failing the run.
type EtcdSource struct {
	client etcdClient
	cfg    *config.SourceConfig
	logger zerolog.Logger
}

func NewEtcdSource(client etcdClient, cfg *config.SourceConfig, logger zerolog.Logger) *EtcdSource {
	return &EtcdSource{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *EtcdSource) Domains(ctx context.Context) ([]string, error) {
	resp, err := s.client.Get(ctx, s.cfg.EtcdPathPrefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("list domains under %s: %w", s.cfg.EtcdPathPrefix, err)
	}

	var domains []string
	for _, kv := range resp.Kvs {
		key := string(kv.Key)
		entry, err := unmarshalEtcdEntry(kv.Value)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Skipping undecodable domain entry")
			continue
		}
		if !entry.Enabled {
			s.logger.Debug().Str("key", key).Msg("Skipping disabled domain entry")
			continue
		}
		domains = append(domains, domainFromKey(s.cfg.EtcdPathPrefix, key))
	}

	s.logger.Debug().Int("count", len(domains)).Msg("Loaded domain list from etcd")
	return domains, nil
}

func (s *EtcdSource) Close() error {
	return s.client.Close()
}
