package services

import (
	"context"
	"encoding/json"
	"fmt"
	"freshcatch_server/config"
	"freshcatch_server/structs"
	"freshcatch_server/structs/tables"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching functionality with connection pooling and retry logic
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2 * time.Second
		backoff := 100 * time.Millisecond << attempt // exponential
		if backoff > maxBackoff {
			backoff = maxBackoff
		}

		time.Sleep(backoff)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if an error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	// Retry on network/connection errors
	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil // Don't retry on key not found
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// ClearAll flushes the whole cache database. Exposed through the debug
// routes in non-production environments only.
func (cs *CacheService) ClearAll() error {
	return cs.withRetry(func() error {
		return cs.client.FlushDB(redisCtx).Err()
	}, 3)
}

// BlacklistToken adds a token's jti to the blacklist with expiration and retry logic
func (cs *CacheService) BlacklistToken(jti uuid.UUID, exp time.Time) error {
	ttl := cs.config.Auth.BlacklistCacheTTL
	if exp.After(time.Now()) {
		ttl = time.Until(exp)
	}

	key := fmt.Sprintf("blacklist:%s", jti)
	return cs.Set(key, "true", ttl)
}

// IsTokenBlacklisted checks if a JTI exists in Redis with retry logic
func (cs *CacheService) IsTokenBlacklisted(jti uuid.UUID) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", jti.String())
	val, err := cs.Get(key)
	if err != nil {
		return false, err
	}

	return val == "true", nil
}

// IncrementRateLimit atomically increments a rate limit counter
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(redisCtx, key, ttl).Err()
		}

		return nil
	}, 3)

	return int(result), err
}

// GetRateLimit retrieves the current rate limit count for an IP/endpoint
func (cs *CacheService) GetRateLimit(ip, endpoint string) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)
	val, err := cs.Get(key)
	if err != nil {
		return 0, err
	}

	if val == "" {
		return 0, nil
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid rate limit value: %w", err)
	}

	return count, nil
}

// Ping tests the Redis connection
func (cs *CacheService) Ping() error {
	return cs.withRetry(func() error {
		return cs.client.Ping(redisCtx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// ============================================================================
// Product Caching Methods
// ============================================================================

// GetProductList retrieves a cached product page for the given filter key
func (cs *CacheService) GetProductList(filterKey string) ([]tables.Product, error) {
	key := fmt.Sprintf("products:list:%s", filterKey)

	products, err := getJSON[[]tables.Product](cs, key)
	if err != nil {
		cs.logger.Warn("Failed to get product list from cache", "error", err, "key", key)
		return nil, err
	}

	if products == nil {
		return nil, nil
	}

	return *products, nil
}

// SetProductList caches a product page for the given filter key
func (cs *CacheService) SetProductList(filterKey string, products []tables.Product) error {
	key := fmt.Sprintf("products:list:%s", filterKey)
	return setJSON(cs, key, products, cs.getProductListTTL())
}

// GetProductByID retrieves a cached product by ID
func (cs *CacheService) GetProductByID(id string) (*tables.Product, error) {
	key := fmt.Sprintf("product:id:%s", id)

	product, err := getJSON[tables.Product](cs, key)
	if err != nil {
		cs.logger.Warn("Failed to get product from cache", "error", err, "id", id)
		return nil, err
	}

	return product, nil
}

// SetProductByID caches a product by ID
func (cs *CacheService) SetProductByID(product *tables.Product) error {
	key := fmt.Sprintf("product:id:%s", product.ID.String())
	return setJSON(cs, key, product, cs.getProductListTTL())
}

// InvalidateProductCaches removes all product-related caches
// This should be called when any product is created, updated, or deleted
func (cs *CacheService) InvalidateProductCaches(productID uuid.UUID) error {
	cs.logger.Info("Invalidating product caches", "product_id", productID)

	if err := cs.Delete(fmt.Sprintf("product:id:%s", productID.String())); err != nil {
		cs.logger.Warn("Failed to delete product ID cache", "product_id", productID, "error", err)
	}

	// Delete all cached product pages (they may contain this product)
	if err := cs.DeletePattern("products:list:*"); err != nil {
		cs.logger.Warn("Failed to delete product list cache", "error", err)
		return err
	}

	return nil
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(pattern string) error {
	return cs.withRetry(func() error {
		var cursor uint64

		for {
			keys, nextCursor, err := cs.client.Scan(redisCtx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if len(keys) > 0 {
				if err := cs.client.Del(redisCtx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}

			cursor = nextCursor
			if cursor == 0 {
				break
			}
		}

		return nil
	}, 3)
}

// ============================================================================
// Helper Methods
// ============================================================================

// getProductListTTL returns the TTL for product lists from config
func (cs *CacheService) getProductListTTL() time.Duration {
	if cs.config.Cache.ProductListTTL > 0 {
		return cs.config.Cache.ProductListTTL
	}
	return 5 * time.Minute // fallback default
}

func setJSON[T any](cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(key, data, ttl)
}

func getJSON[T any](cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not found in cache
	}

	var result T
	err = json.Unmarshal([]byte(val), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
