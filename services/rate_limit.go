package services

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/jesuspadres/Vibe-Check/dto"
	"github.com/jesuspadres/Vibe-Check/model"
	"github.com/jesuspadres/Vibe-Check/shared"
)

// RateLimitService enforces the per-client audit quota: maxRequests calls
// per rolling window. The primary path is a shared Redis counter so the
// limit holds across instances; without Redis an in-process map takes
// over. Redis errors fail OPEN: an infrastructure outage must not block
// legitimate traffic.
type RateLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService

	maxRequests int
	window      time.Duration

	mutex   sync.Mutex
	windows map[string]*model.RateLimitWindow
}

const RATE_LIMIT_SVC = "rate_limit_svc"

const rateLimitKeyPrefix = "vibe_check:audit:"

// auditWindowScript increments the client's counter and arms the window
// expiry in one round trip, so concurrent requests cannot race a separate
// read-then-write.
var auditWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.maxRequests = shared.DefaultRateLimitMax
	if maxStr := os.Getenv("RATE_LIMIT_MAX"); maxStr != "" {
		if max, err := strconv.Atoi(maxStr); err == nil && max > 0 {
			svc.maxRequests = max
		}
	}

	svc.window = shared.DefaultRateLimitWindow
	if windowStr := os.Getenv("RATE_LIMIT_WINDOW"); windowStr != "" {
		if window, err := time.ParseDuration(windowStr); err == nil && window > 0 {
			svc.window = window
		}
	}

	svc.windows = make(map[string]*model.RateLimitWindow)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *RateLimitService) MaxRequests() int {
	return svc.maxRequests
}

// Check records one attempt for clientID and returns the decision.
func (svc *RateLimitService) Check(ctx context.Context, clientID string) dto.RateLimitInfo {
	info := svc.check(ctx, clientID)
	if !info.Allowed {
		rateLimitDenials.Inc()
	}
	return info
}

func (svc *RateLimitService) check(ctx context.Context, clientID string) dto.RateLimitInfo {
	if svc.redisSvc != nil && svc.redisSvc.Enabled() {
		info, err := svc.checkRedis(ctx, clientID)
		if err == nil {
			return info
		}

		// Fail open: availability over strictness when the store errors.
		log.WithError(err).WithField("client_id", clientID).Error("Rate limit store check failed, allowing request")
		rateLimitStoreErrors.Inc()
		return dto.RateLimitInfo{
			Allowed:   true,
			Remaining: 0,
			ResetTime: time.Now(),
		}
	}

	return svc.checkLocal(clientID)
}

func (svc *RateLimitService) checkRedis(ctx context.Context, clientID string) (dto.RateLimitInfo, error) {
	key := rateLimitKeyPrefix + clientID

	res, err := auditWindowScript.Run(ctx, svc.redisSvc.Client(), []string{key}, svc.window.Milliseconds()).Int64Slice()
	if err != nil {
		return dto.RateLimitInfo{}, err
	}

	count := int(res[0])
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = svc.window
	}

	remaining := svc.maxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	return dto.RateLimitInfo{
		Allowed:   count <= svc.maxRequests,
		Remaining: remaining,
		ResetTime: time.Now().Add(ttl),
	}, nil
}

func (svc *RateLimitService) checkLocal(clientID string) dto.RateLimitInfo {
	now := time.Now()

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	// Lazy reclamation of expired windows, roughly every tenth call,
	// bounds memory without a dedicated timer.
	if rand.Float64() < 0.1 {
		for id, w := range svc.windows {
			if w.Expired(now) {
				delete(svc.windows, id)
			}
		}
	}

	window, ok := svc.windows[clientID]
	if !ok || window.Expired(now) {
		window = &model.RateLimitWindow{Count: 1, ResetAt: now.Add(svc.window)}
		svc.windows[clientID] = window
		return dto.RateLimitInfo{
			Allowed:   true,
			Remaining: svc.maxRequests - 1,
			ResetTime: window.ResetAt,
		}
	}

	if window.Count >= svc.maxRequests {
		return dto.RateLimitInfo{
			Allowed:   false,
			Remaining: 0,
			ResetTime: window.ResetAt,
		}
	}

	window.Count++
	return dto.RateLimitInfo{
		Allowed:   true,
		Remaining: svc.maxRequests - window.Count,
		ResetTime: window.ResetAt,
	}
}

// ClientID resolves the quota identity for a request: first hop of
// X-Forwarded-For, then X-Real-IP, then the CDN connecting-IP header,
// else a shared anonymous bucket.
func (svc *RateLimitService) ClientID(c *fiber.Ctx) string {
	if forwarded := c.Get(shared.HeaderForwardedFor); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}

	if realIP := c.Get(shared.HeaderRealIP); realIP != "" {
		return realIP
	}

	if cfIP := c.Get(shared.HeaderCFConnectingIP); cfIP != "" {
		return cfIP
	}

	return shared.AnonymousClientID
}
