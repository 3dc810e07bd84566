package app

import (
	"errors"

	c "github.com/d0ngw/chanstat/common"
	"github.com/d0ngw/chanstat/http"
	"github.com/d0ngw/chanstat/prefs"
	"github.com/d0ngw/chanstat/provider"
	"github.com/d0ngw/chanstat/stats"
)

// App 持有偏好设置存储,统计注册表以及可选的Http服务
type App struct {
	conf     *Config
	store    prefs.Store
	registry *stats.Registry
	services *c.Services
	httpSvc  *http.Service
}

// New 根据解析后的配置创建App
func New(conf *Config) (*App, error) {
	if conf == nil || conf.Preferences == nil || conf.Statistics == nil {
		return nil, errors.New("config is not parsed")
	}
	onError, err := stats.ErrorHandlerByName(conf.Statistics.OnError)
	if err != nil {
		return nil, err
	}

	store, err := prefs.Open(conf.Preferences)
	if err != nil {
		return nil, err
	}
	providers := conf.Providers
	if providers == nil {
		providers = provider.Conf{}
	}
	registry, err := stats.NewRegistry(store, providers, stats.WithErrorHandler(onError))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	p := &App{conf: conf, store: store, registry: registry}
	if conf.HTTP != nil {
		if err = conf.HTTP.RegController(http.NewStatsController(registry)); err != nil {
			_ = store.Close()
			return nil, err
		}
		p.httpSvc = http.NewService(conf.HTTP)
		p.services = c.NewServices(p.httpSvc)
	}
	c.Infof("chanstat app created,driver:%s,providers:%d", conf.Preferences.Driver, len(conf.Providers))
	return p, nil
}

// Registry 统计注册表
func (p *App) Registry() *stats.Registry {
	return p.registry
}

// HTTP 返回Http服务,未配置http时返回nil
func (p *App) HTTP() *http.Service {
	return p.httpSvc
}

// Start 初始化并启动所有服务
func (p *App) Start() error {
	if p.services == nil {
		return nil
	}
	if !p.services.Init() {
		return errors.New("init services fail")
	}
	if !p.services.Start() {
		return errors.New("start services fail")
	}
	return nil
}

// Close 停止服务并关闭存储
func (p *App) Close() error {
	if p.services != nil && !p.services.Stop() {
		c.Warnf("stop services fail")
	}
	return p.store.Close()
}
