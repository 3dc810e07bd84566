package prefs

import (
	"errors"
	"fmt"

	"github.com/d0ngw/chanstat/cache"
	"github.com/d0ngw/chanstat/stats"
)

var _ Store = (*RedisStore)(nil)

// RedisStoreConf Redis存储配置
type RedisStoreConf struct {
	cache.RedisConf `yaml:",inline"`
	Group           string `yaml:"group"`
	KeyPrefix       string `yaml:"key_prefix"`
}

// Parse implements Configurer.Parse
func (p *RedisStoreConf) Parse() error {
	if p.Group == "" {
		return fmt.Errorf("need redis group")
	}
	if err := p.RedisConf.Parse(); err != nil {
		return err
	}
	_, err := p.GetGroupServers(p.Group)
	return err
}

// RedisStore keeps the document as a redis string
type RedisStore struct {
	client *cache.RedisClient
	param  *cache.ParamKey
}

// NewRedisStore create RedisStore with parsed conf
func NewRedisStore(conf *RedisStoreConf, key string) (*RedisStore, error) {
	if conf == nil {
		return nil, errors.New("no redis conf")
	}
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{
		client: cache.NewRedisClient(&conf.RedisConf),
		param:  cache.NewParamConf(conf.Group, conf.KeyPrefix, 0).NewParamKey(key),
	}, nil
}

// LoadStatistics implements stats.Preferences.LoadStatistics
func (p *RedisStore) LoadStatistics() (stats.Document, error) {
	data, err := p.client.Get(p.param)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// SaveStatistics implements stats.Preferences.SaveStatistics
func (p *RedisStore) SaveStatistics(doc stats.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return p.client.Set(p.param, data)
}

// Close implements Store.Close
func (p *RedisStore) Close() error {
	return p.client.Close()
}
