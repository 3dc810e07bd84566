package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type DemoController struct {
	BaseController
	called []string
}

func (p *DemoController) Index(w http.ResponseWriter, r *http.Request) {
	p.called = append(p.called, "index:"+p.Name)
}

func (p *DemoController) SecondPage(w http.ResponseWriter, r *http.Request) {
	p.called = append(p.called, "second:"+p.Name)
}

func (p *DemoController) NotHandler(name string) string {
	return name
}

func (p *DemoController) GetHandlers() (map[string]http.HandlerFunc, error) {
	return ReflectHandlers(p)
}

func TestReflectHandlers(t *testing.T) {
	testReflectHandlers(t, "demo1")
	testReflectHandlers(t, "demo2")

	_, err := ReflectHandlers(nil)
	assert.NotNil(t, err)
}

func testReflectHandlers(t *testing.T, name string) {
	controller := &DemoController{
		BaseController: BaseController{
			Name: name,
			Path: "/" + name,
		},
	}

	mapping, err := ReflectHandlers(controller)
	assert.Nil(t, err, "err")
	assert.EqualValues(t, 2, len(mapping))

	mapping["index"](nil, nil)
	mapping["second_page"](nil, nil)
	assert.Equal(t, []string{"index:" + name, "second:" + name}, controller.called)

	mapping, err = controller.GetHandlers()
	assert.Nil(t, err, "err")
	assert.EqualValues(t, 2, len(mapping))
}

func TestToUnderlineName(t *testing.T) {
	assert.EqualValues(t, "index", ToUnderlineName("index"))
	assert.EqualValues(t, "index", ToUnderlineName("INDEX"))
	assert.EqualValues(t, "index", ToUnderlineName("Index"))
	assert.EqualValues(t, "in_dex", ToUnderlineName("InDex"))
	assert.EqualValues(t, "in_dex", ToUnderlineName("InDEX"))
	assert.EqualValues(t, "in_de_x", ToUnderlineName("InDeX"))
	assert.EqualValues(t, "increment_views", ToUnderlineName("IncrementViews"))
	assert.EqualValues(t, "in语言de_x", ToUnderlineName("In语言DeX"))
	assert.EqualValues(t, "", ToUnderlineName(""))
}

func TestRegController(t *testing.T) {
	conf := NewConfig("127.0.0.1:0")
	assert.Nil(t, conf.Parse())
	controller := &DemoController{BaseController: BaseController{Name: "demo", Path: "/demo"}}
	assert.Nil(t, conf.RegController(controller))
	assert.Len(t, conf.handles, 2)
	assert.Contains(t, conf.handles, "/demo/index")
	assert.Contains(t, conf.handles, "/demo/second_page")

	assert.NotNil(t, conf.RegController(controller))
	assert.NotNil(t, conf.RegController(nil))
	assert.NotNil(t, conf.RegHandleFunc("/nil", nil))

	assert.NotNil(t, (&Config{}).Parse())
	assert.NotNil(t, (&Config{Addr: ":80", MaxConns: -1}).Parse())
}
