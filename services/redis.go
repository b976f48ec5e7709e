package services

import (
	"context"
	"fmt"
	"os"
	"strconv"

	appContext "github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisService wraps the shared counter store backing the rate limiter.
// Running without REDIS_ADDR is a supported mode: the client stays nil and
// the limiter falls back to its in-process counters.
type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Warn("REDIS_ADDR not set, rate limiting will use the in-process fallback")
		return svc.DefaultService.Configure(ctx)
	}

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})

	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis != nil {
		if _, err := svc.redis.Ping(context.Background()).Result(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Connected to Redis")
	}
	return nil
}

func (svc *RedisService) Shutdown() {
	if svc.redis != nil {
		_ = svc.redis.Close()
	}
}

// Enabled reports whether a shared store is configured.
func (svc *RedisService) Enabled() bool {
	return svc.redis != nil
}

func (svc *RedisService) Client() *redis.Client {
	return svc.redis
}

// Healthy pings the store; used by the health endpoint.
func (svc *RedisService) Healthy(ctx context.Context) bool {
	if svc.redis == nil {
		return false
	}
	_, err := svc.redis.Ping(ctx).Result()
	return err == nil
}
