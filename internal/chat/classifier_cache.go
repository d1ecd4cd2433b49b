// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saturdaylabs/saturday/internal/platform/constants"
)

// CachedClassifier memoizes classifier results in Redis.
//
// The remote model is deterministic for a given input, so identical messages
// can reuse a prior label instead of paying the model round-trip again.
//
// # Degradation
//
// The cache is strictly best-effort. A Redis failure on read or write is
// logged and ignored; the wrapped classifier remains the source of truth.
type CachedClassifier struct {
	inner  Classifier
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedClassifier wraps a classifier with Redis memoization.
func NewCachedClassifier(inner Classifier, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClassifier {
	return &CachedClassifier{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Classify returns the cached label for the message when present, otherwise
// consults the wrapped classifier and stores the result.
func (classifier *CachedClassifier) Classify(ctx context.Context, text string) (string, error) {
	key := classifier.cacheKey(text)

	cached, err := classifier.client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		classifier.logger.Warn("classifier_cache_read_failed", slog.Any("error", err))
	}

	label, err := classifier.inner.Classify(ctx, text)
	if err != nil {
		return "", err
	}

	if err := classifier.client.Set(ctx, key, label, classifier.ttl).Err(); err != nil {
		classifier.logger.Warn("classifier_cache_write_failed", slog.Any("error", err))
	}

	return label, nil
}

// cacheKey hashes the normalized message so arbitrary user text never appears
// verbatim in Redis keys.
func (classifier *CachedClassifier) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return constants.RedisPrefixClassify + hex.EncodeToString(sum[:])
}
