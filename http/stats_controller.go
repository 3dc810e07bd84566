package http

import (
	"fmt"
	"net/http"

	c "github.com/d0ngw/chanstat/common"
	"github.com/d0ngw/chanstat/stats"
)

// StatsRegistry 统计数据的读写接口,由*stats.Registry实现
type StatsRegistry interface {
	IncrementViews(provider string)
	IncrementPosts(provider string, newThread bool)
	Items() map[string]stats.Item
	Item(provider string) (stats.Item, bool)
	Document() stats.Document
	Clear()
}

var _ StatsRegistry = (*stats.Registry)(nil)

// StatsController 统计数据的管理接口
type StatsController struct {
	BaseController
	registry StatsRegistry
}

// NewStatsController 创建挂在/stats/下的控制器
func NewStatsController(registry StatsRegistry) *StatsController {
	return &StatsController{
		BaseController: BaseController{Name: "stats", Path: "/stats/"},
		registry:       registry,
	}
}

// GetHandlers implements Controller.GetHandlers
func (p *StatsController) GetHandlers() (map[string]http.HandlerFunc, error) {
	return ReflectHandlers(p)
}

// prepare 检查请求方法并解析参数
func prepare(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		RenderError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
		return false
	}
	if err := r.ParseForm(); err != nil {
		RenderError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func requireProvider(w http.ResponseWriter, r *http.Request) (string, bool) {
	provider := GetParameter(r.Form, "provider")
	if provider == "" {
		RenderError(w, http.StatusBadRequest, "need provider")
		return "", false
	}
	return provider, true
}

// recoverRender 将registry的panic转为500响应
func recoverRender(w http.ResponseWriter, r *http.Request) {
	if err := recover(); err != nil {
		c.Errorf("handle %s fail,err:%v", r.URL.Path, err)
		RenderError(w, http.StatusInternalServerError, fmt.Sprint(err))
	}
}

// Items 所有provider的统计数据
func (p *StatsController) Items(w http.ResponseWriter, r *http.Request) {
	if !prepare(w, r, http.MethodGet) {
		return
	}
	RenderData(w, p.registry.Items())
}

// Item 单个provider的统计数据
func (p *StatsController) Item(w http.ResponseWriter, r *http.Request) {
	if !prepare(w, r, http.MethodGet) {
		return
	}
	provider, ok := requireProvider(w, r)
	if !ok {
		return
	}
	item, ok := p.registry.Item(provider)
	if !ok {
		RenderError(w, http.StatusNotFound, fmt.Sprintf("no statistics of %s", provider))
		return
	}
	RenderData(w, item)
}

// Export 原始的统计文档
func (p *StatsController) Export(w http.ResponseWriter, r *http.Request) {
	if !prepare(w, r, http.MethodGet) {
		return
	}
	doc := p.registry.Document()
	if doc == nil {
		doc = stats.Document{}
	}
	RenderData(w, doc)
}

// IncrementViews 增加一次浏览
func (p *StatsController) IncrementViews(w http.ResponseWriter, r *http.Request) {
	if !prepare(w, r, http.MethodPost) {
		return
	}
	provider, ok := requireProvider(w, r)
	if !ok {
		return
	}
	defer recoverRender(w, r)
	p.registry.IncrementViews(provider)
	RenderData(w, nil)
}

// IncrementPosts 增加一次发帖,new_thread为true时同时增加一次发主题
func (p *StatsController) IncrementPosts(w http.ResponseWriter, r *http.Request) {
	if !prepare(w, r, http.MethodPost) {
		return
	}
	provider, ok := requireProvider(w, r)
	if !ok {
		return
	}
	newThread, err := GetBoolParameter(r.Form, "new_thread")
	if err != nil {
		RenderError(w, http.StatusBadRequest, fmt.Sprintf("invalid new_thread:%v", err))
		return
	}
	defer recoverRender(w, r)
	p.registry.IncrementPosts(provider, newThread)
	RenderData(w, nil)
}

// Clear 清空所有统计数据
func (p *StatsController) Clear(w http.ResponseWriter, r *http.Request) {
	if !prepare(w, r, http.MethodPost) {
		return
	}
	defer recoverRender(w, r)
	p.registry.Clear()
	RenderData(w, nil)
}
