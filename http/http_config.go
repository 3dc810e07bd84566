// Package http 提供统计数据的http管理接口
package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	c "github.com/d0ngw/chanstat/common"
)

// Config Http配置
type Config struct {
	Addr         string `yaml:"addr"`          //Http监听地址
	ReadTimeout  int    `yaml:"read_timeout"`  //读超时,单位秒
	WriteTimeout int    `yaml:"write_timeout"` //写超时,单位秒
	MaxConns     int    `yaml:"max_conns"`     //最大的并发连接数
	handles      map[string]http.HandlerFunc
	handlesMu    sync.RWMutex
}

// NewConfig 创建配置
func NewConfig(addr string) *Config {
	return &Config{Addr: addr}
}

// Parse implements Configurer.Parse
func (p *Config) Parse() error {
	if p.Addr == "" {
		return fmt.Errorf("need http addr")
	}
	if p.ReadTimeout < 0 || p.WriteTimeout < 0 || p.MaxConns < 0 {
		return fmt.Errorf("invalid http timeout or max_conns")
	}
	return nil
}

// RegController 注册controller中的所有处理函数
func (p *Config) RegController(controller Controller) error {
	if controller == nil {
		return fmt.Errorf("can't reg nil controller")
	}

	path := controller.GetPath()
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	handlers, err := controller.GetHandlers()
	if err != nil {
		return err
	}
	if len(handlers) == 0 {
		c.Warnf("can't find handler in %T", controller)
		return nil
	}

	for handlerPath, h := range handlers {
		patternPath := path + strings.TrimPrefix(handlerPath, "/")
		if err := p.RegHandleFunc(patternPath, h); err != nil {
			return err
		}
		c.Debugf("register controller %T#%s,path:%s", controller, controller.GetName(), patternPath)
	}
	return nil
}

// RegHandleFunc 注册patternPath的处理函数handlerFunc
func (p *Config) RegHandleFunc(patternPath string, handlerFunc http.HandlerFunc) error {
	if handlerFunc == nil {
		return fmt.Errorf("can't bind nil handlerFunc to path %s", patternPath)
	}
	p.handlesMu.Lock()
	defer p.handlesMu.Unlock()
	if p.handles == nil {
		p.handles = map[string]http.HandlerFunc{}
	}
	if _, ok := p.handles[patternPath]; ok {
		return fmt.Errorf("duplicate path:%s", patternPath)
	}
	p.handles[patternPath] = handlerFunc
	return nil
}

// ServeMux 使用注册的处理函数构建ServeMux
func (p *Config) ServeMux() *http.ServeMux {
	p.handlesMu.RLock()
	defer p.handlesMu.RUnlock()
	serveMux := http.NewServeMux()
	for pattern, handler := range p.handles {
		serveMux.Handle(pattern, handler)
	}
	return serveMux
}
