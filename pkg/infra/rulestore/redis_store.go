package rulestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	DefaultKeyPrefix = "agelock:rules"

	redisTimeout = 2 * time.Second
)

// RedisStore keeps each list as a Redis list under <prefix>:<list>. Calls go
// through a circuit breaker so an unreachable Redis fails fast and the
// engine keeps its current rules.
type RedisStore struct {
	logger  *logrus.Logger
	client  redis.Cmdable
	prefix  string
	breaker CircuitBreaker
}

func NewRedisStore(logger *logrus.Logger, client redis.Cmdable, prefix string, breaker CircuitBreaker) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if breaker == nil {
		breaker = NewCircuitBreaker("rulestore-redis", 30*time.Second, 3)
	}
	return &RedisStore{
		logger:  logger,
		client:  client,
		prefix:  prefix,
		breaker: breaker,
	}
}

func (s *RedisStore) Key(list List) string {
	return s.prefix + ":" + string(list)
}

func (s *RedisStore) Load(ctx context.Context) (Supplement, error) {
	var sup Supplement
	var errs []error
	ads, err := s.read(ctx, AdList)
	if err != nil {
		errs = append(errs, err)
	}
	sup.AdDomains = ads
	malicious, err := s.read(ctx, MaliciousList)
	if err != nil {
		errs = append(errs, err)
	}
	sup.MaliciousDomains = malicious
	return sup, errors.Join(errs...)
}

func (s *RedisStore) read(ctx context.Context, list List) ([]string, error) {
	var raw []string
	err := s.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, redisTimeout)
		defer cancel()
		var err error
		raw, err = s.client.LRange(ctx, s.Key(list), 0, -1).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load %s list: %w", list, err)
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	skipped := 0
	for _, item := range raw {
		d, err := canonical(item)
		if err != nil {
			skipped++
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	if skipped > 0 {
		s.logger.WithFields(logrus.Fields{
			"key":     s.Key(list),
			"skipped": skipped,
		}).Warn("skipped invalid entries in supplementary rule list")
	}
	return out, nil
}

func (s *RedisStore) Add(ctx context.Context, list List, domain string) (bool, error) {
	if !list.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownList, list)
	}
	d, err := canonical(domain)
	if err != nil {
		return false, err
	}
	current, err := s.read(ctx, list)
	if err != nil {
		return false, err
	}
	for _, existing := range current {
		if existing == d {
			return false, nil
		}
	}
	err = s.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, redisTimeout)
		defer cancel()
		return s.client.RPush(ctx, s.Key(list), d).Err()
	})
	if err != nil {
		return false, fmt.Errorf("add to %s list: %w", list, err)
	}
	return true, nil
}
