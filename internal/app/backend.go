package app

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/navstash/internal/config"
	"github.com/MrSnakeDoc/navstash/internal/kv"
	"github.com/MrSnakeDoc/navstash/internal/kv/memory"
	kvredis "github.com/MrSnakeDoc/navstash/internal/kv/redis"
	"github.com/MrSnakeDoc/navstash/internal/kv/remote"
	"github.com/MrSnakeDoc/navstash/internal/logger"
	"github.com/MrSnakeDoc/navstash/internal/store"
	"github.com/MrSnakeDoc/navstash/internal/utils"
)

// Backend is the storage stack shared by the server and the CLI commands.
type Backend struct {
	Store      *store.Store
	HTTPClient *http.Client // outbound client (WebDAV, remote KV)
	Kind       string

	closer io.Closer
	logger logger.Logger
}

// OpenBackend builds the outbound HTTP client and the KV backend selected
// by cfg.KVBackend. Redis is connected eagerly (fail fast).
func OpenBackend(cfg *config.Config, loggerClient logger.Logger) (*Backend, error) {
	httpClient, err := utils.NewHTTPClient(cfg.OutboundProxy, cfg.OutboundTimeout)
	if err != nil {
		return nil, err
	}
	if cfg.OutboundProxy != "" {
		loggerClient.Info("outbound requests go through proxy")
	}

	loggerClient = loggerClient.Named("kv")
	b := &Backend{HTTPClient: httpClient, Kind: cfg.KVBackend, logger: loggerClient}

	var backend kv.Store
	switch cfg.KVBackend {
	case kv.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := kvredis.Connect(kvredis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		rs := kvredis.NewStore(client, cfg.KVPrefix)
		backend, b.closer = rs, rs
		loggerClient.Info("Redis initialized successfully", logger.String("prefix", cfg.KVPrefix))

	case kv.BackendRemote:
		client, err := remote.New(remote.Options{
			BaseURL:       cfg.RemoteKVURL,
			Token:         cfg.RemoteKVToken,
			SigningSecret: cfg.RemoteKVSigningSecret,
			HTTPClient:    httpClient,
		})
		if err != nil {
			return nil, err
		}
		backend = client
		loggerClient.Info("remote kv configured",
			logger.Bool("signed", cfg.RemoteKVSigningSecret != ""))

	case kv.BackendMemory:
		backend = memory.New()
		loggerClient.Warn("using in-memory kv backend, data is lost on restart")

	default:
		return nil, fmt.Errorf("unknown kv backend %q", cfg.KVBackend)
	}

	b.Store = store.New(backend)
	return b, nil
}

// Close releases the KV connection, if any.
func (b *Backend) Close() {
	if b.closer == nil {
		return
	}
	utils.CloseLogged(b.closer, b.logger, b.Kind)
}
