package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/worksync/session-agent/internal/core/ports"
	mongostore "github.com/worksync/session-agent/internal/infrastructure/db/mongo"
	redisstore "github.com/worksync/session-agent/internal/infrastructure/db/redis"
	"github.com/worksync/session-agent/internal/infrastructure/http/handlers"
	"github.com/worksync/session-agent/internal/infrastructure/storage/file"
	"github.com/worksync/session-agent/internal/infrastructure/storage/memory"
	"github.com/worksync/session-agent/internal/pkg/config"
)

// stores holds the two credential scopes and the connections behind them.
type stores struct {
	durable ports.ScopeStorage
	session ports.ScopeStorage
	checks  map[string]handlers.Check

	mongo *mongo.Client
	redis *goredis.Client
	log   zerolog.Logger
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{checks: make(map[string]handlers.Check), log: log}

	if cfg.UsesRedis() {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		st.redis = rdb
		st.checks["redis"] = handlers.RedisCheck(rdb)
	}

	if cfg.UsesMongo() {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			st.close()
			return nil, err
		}
		st.mongo = client
		st.checks["mongodb"] = handlers.MongoCheck(db)
		st.durable = mongostore.NewScopeRepository(db, "durable")
	}

	switch cfg.Storage.Durable {
	case "file":
		path, err := cfg.DurableFile()
		if err != nil {
			st.close()
			return nil, err
		}
		fs, err := file.Open(path, cfg.Storage.Secret)
		if err != nil {
			st.close()
			return nil, fmt.Errorf("open durable store: %w", err)
		}
		st.durable = fs
		log.Info().Str("path", fs.Path()).Bool("sealed", cfg.Storage.Secret != "").Msg("durable scope on disk")
	case "redis":
		// No expiry: the durable scope outlives restarts until logout.
		st.durable = redisstore.NewScopeStorage(st.redis, "durable", 0)
	}

	switch cfg.Storage.Session {
	case "redis":
		st.session = redisstore.NewScopeStorage(st.redis, "session", cfg.Storage.SessionTTL)
	default:
		st.session = memory.New()
	}

	log.Info().
		Str("durable", cfg.Storage.Durable).
		Str("session", cfg.Storage.Session).
		Msg("credential storage ready")
	return st, nil
}

func (s *stores) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.mongo != nil {
		if err := s.mongo.Disconnect(ctx); err != nil {
			s.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn().Err(err).Msg("redis close")
		}
	}
}
