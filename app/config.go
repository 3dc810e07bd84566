// Package app wires the configured preferences store, providers and
// statistics registry together
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	c "github.com/d0ngw/chanstat/common"
	"github.com/d0ngw/chanstat/http"
	"github.com/d0ngw/chanstat/prefs"
	"github.com/d0ngw/chanstat/provider"
	"github.com/d0ngw/chanstat/stats"
)

// StatisticsConf 统计配置
type StatisticsConf struct {
	OnError string `yaml:"on_error"` //保存失败时的处理方式,panic或log
}

// Parse implements Configurer.Parse
func (p *StatisticsConf) Parse() error {
	p.OnError = strings.ToLower(strings.TrimSpace(p.OnError))
	_, err := stats.ErrorHandlerByName(p.OnError)
	return err
}

// Config 应用配置
type Config struct {
	c.AppConfig `yaml:",inline"`
	Providers   provider.Conf   `yaml:"providers"`
	Preferences *prefs.Conf     `yaml:"preferences"`
	HTTP        *http.Config    `yaml:"http"`
	Statistics  *StatisticsConf `yaml:"statistics"`
}

// Parse implements Configurer.Parse
func (p *Config) Parse() error {
	if p.Preferences == nil {
		p.Preferences = &prefs.Conf{}
	}
	if p.Statistics == nil {
		p.Statistics = &StatisticsConf{}
	}
	return c.Parse(p)
}

// LoadConfig 加载path指定的YAML配置并解析
func LoadConfig(path string) (*Config, error) {
	conf := &Config{}
	if err := c.LoadConfig(conf, "", filepath.Dir(path), filepath.Base(path)); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := conf.Parse(); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return conf, nil
}
