package http

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	c "github.com/d0ngw/chanstat/common"
	"golang.org/x/net/netutil"
)

type tcpKeepAliveListener struct {
	*net.TCPListener
}

// Accept 接受连接并开启keep alive
func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err = tc.SetKeepAlive(true); err != nil {
		return nil, err
	}
	if err = tc.SetKeepAlivePeriod(3 * time.Minute); err != nil {
		return nil, err
	}
	return tc, nil
}

// GraceableHandler 安全地关闭的处理器
type GraceableHandler struct {
	handler   http.Handler
	waitGroup *sync.WaitGroup
}

func (p *GraceableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.waitGroup.Add(1)
	defer p.waitGroup.Done()

	p.handler.ServeHTTP(w, r)
}

// Service Http服务
type Service struct {
	c.BaseService
	Conf         *Config
	listener     net.Listener
	graceHandler *GraceableHandler
	server       *http.Server
	lock         sync.Mutex
}

// NewService 创建Http服务
func NewService(conf *Config) *Service {
	return &Service{BaseService: c.BaseService{SName: "http"}, Conf: conf}
}

// Init 初始化Http服务
func (p *Service) Init() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.Conf == nil {
		return errors.New("no http conf")
	}

	graceHandler := &GraceableHandler{
		handler:   p.Conf.ServeMux(),
		waitGroup: &sync.WaitGroup{}}

	p.server = &http.Server{
		Addr:         p.Conf.Addr,
		ReadTimeout:  time.Duration(p.Conf.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(p.Conf.WriteTimeout) * time.Second,
		Handler:      graceHandler}
	p.graceHandler = graceHandler
	return nil
}

// Start 启动Http服务,开始端口监听和服务处理
func (p *Service) Start() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server == nil {
		c.Errorf("http service is not inited")
		return false
	}

	ln, err := net.Listen("tcp", p.Conf.Addr)
	if err != nil {
		c.Errorf("listen at %s fail,err:%v", p.Conf.Addr, err)
		return false
	}
	c.Infof("listen at %s", ln.Addr())

	tcpListener := tcpKeepAliveListener{ln.(*net.TCPListener)}
	if p.Conf.MaxConns > 0 {
		p.listener = netutil.LimitListener(tcpListener, p.Conf.MaxConns)
	} else {
		p.listener = tcpListener
	}

	server, listener, waitGroup := p.server, p.listener, p.graceHandler.waitGroup
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		if err := server.Serve(listener); err != nil {
			var level = c.Error
			if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
				level = c.Warn
			}
			c.Logf(level, "server.Serve return with %v", err)
		}
	}()
	return true
}

// Addr 返回实际监听的地址,未启动时返回空
func (p *Service) Addr() string {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.listener == nil {
		return ""
	}
	return p.listener.Addr().String()
}

// URL 返回path对应的完整地址
func (p *Service) URL(path string) string {
	return fmt.Sprintf("http://%s%s", p.Addr(), path)
}

// Stop 停止Http服务,关闭端口监听并等待处理中的请求结束
func (p *Service) Stop() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server != nil {
		p.server.SetKeepAlivesEnabled(false)
	}
	if p.listener != nil {
		if err := p.listener.Close(); err != nil {
			c.Errorf("close listener fail,err:%v", err)
		}
	}

	c.Infof("waiting shutdown")
	if p.graceHandler != nil {
		p.graceHandler.waitGroup.Wait()
	}
	if p.server != nil {
		if err := p.server.Close(); err != nil {
			c.Warnf("close server fail,err:%v", err)
		}
	}
	c.Infof("finish shutdown")

	p.listener = nil
	p.graceHandler = nil
	p.server = nil
	return true
}
