// Package provider 提供可浏览的内容源(provider)及其统计能力的配置
package provider

import (
	"fmt"
	"sort"
	"strings"

	c "github.com/d0ngw/chanstat/common"
	"github.com/d0ngw/chanstat/stats"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// Statistics 统计能力,未开启的计数不会被记录
type Statistics struct {
	ThreadsViewed  bool `yaml:"threads_viewed"`
	PostsSent      bool `yaml:"posts_sent"`
	ThreadsCreated bool `yaml:"threads_created"`
}

// Provider 内容源配置,Statistics为空表示不支持统计
type Provider struct {
	Name       string      `yaml:"name"`
	Title      string      `yaml:"title"`
	Statistics *Statistics `yaml:"statistics"`
}

// Conf 内容源列表
type Conf []*Provider

var (
	_ c.Configurer       = (*Conf)(nil)
	_ stats.Capabilities = (Conf)(nil)
)

// Parse implements Configurer.Parse
func (p *Conf) Parse() error {
	var errs *multierror.Error
	seen := map[string]struct{}{}
	for i, provider := range *p {
		if provider == nil {
			errs = multierror.Append(errs, fmt.Errorf("provider #%d is empty", i))
			continue
		}
		provider.Name = strings.TrimSpace(provider.Name)
		if provider.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("provider #%d has no name", i))
			continue
		}
		if _, ok := seen[provider.Name]; ok {
			errs = multierror.Append(errs, fmt.Errorf("duplicate provider %s", provider.Name))
			continue
		}
		seen[provider.Name] = struct{}{}
		if provider.Statistics == nil {
			c.Debugf("provider %s has no statistics", provider.Name)
		}
	}
	return errs.ErrorOrNil()
}

// ProviderNames implements stats.Capabilities.ProviderNames
func (p Conf) ProviderNames() []string {
	names := lo.FilterMap(p, func(provider *Provider, _ int) (string, bool) {
		if provider == nil || provider.Name == "" {
			return "", false
		}
		return provider.Name, true
	})
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// Get 取得名称为name的内容源
func (p Conf) Get(name string) *Provider {
	provider, ok := lo.Find(p, func(provider *Provider) bool {
		return provider != nil && provider.Name == name
	})
	if !ok {
		return nil
	}
	return provider
}

// Statistics implements stats.Capabilities.Statistics
func (p Conf) Statistics(name string) *stats.Capability {
	provider := p.Get(name)
	if provider == nil || provider.Statistics == nil {
		return nil
	}
	return &stats.Capability{
		ThreadsViewed:  provider.Statistics.ThreadsViewed,
		PostsSent:      provider.Statistics.PostsSent,
		ThreadsCreated: provider.Statistics.ThreadsCreated,
	}
}
