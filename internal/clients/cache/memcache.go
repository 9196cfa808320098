package cache

import (
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/logger"
)

const (
	defaultBase = 10
	reportTTL   = 24 * time.Hour
)

type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping memcached")
	}
	return &MemcacheClient{mc}, nil
}

func formatKey(userID int64, option string) string {
	return "report:" + strconv.FormatInt(userID, defaultBase) + ":" + option
}

func (mc *MemcacheClient) CacheReport(userID int64, option string, report string) error {
	logger.Debug("cache report", zap.Int64("userID", userID), zap.String("option", option))
	return mc.client.Set(&memcache.Item{
		Key:        formatKey(userID, option),
		Value:      []byte(report),
		Expiration: int32(reportTTL.Seconds()),
	})
}

func (mc *MemcacheClient) GetReport(userID int64, option string) (string, error) {
	item, err := mc.client.Get(formatKey(userID, option))
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

func (mc *MemcacheClient) InvalidateCache(userID int64, options []string) error {
	logger.Debug("invalidate cache", zap.Int64("userID", userID), zap.Strings("options", options))

	for _, opt := range options {
		err := mc.client.Delete(formatKey(userID, opt))
		if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return err
		}
	}
	return nil
}

// NoCache is used when no memcached hosts are configured, every lookup misses.
type NoCache struct{}

func (NoCache) CacheReport(int64, string, string) error {
	return nil
}

func (NoCache) GetReport(int64, string) (string, error) {
	return "", memcache.ErrCacheMiss
}

func (NoCache) InvalidateCache(int64, []string) error {
	return nil
}
