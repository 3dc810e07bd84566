package provider

import (
	"testing"

	c "github.com/d0ngw/chanstat/common"
	"github.com/d0ngw/chanstat/stats"
	"github.com/stretchr/testify/assert"
)

var providersData = `
providers:
- name: " foo "
  title: Foo board
  statistics:
    threads_viewed: true
    posts_sent: true
    threads_created: true
- name: bar
  statistics:
    posts_sent: true
- name: baz
`

type testConf struct {
	Providers Conf `yaml:"providers"`
}

func TestConfParse(t *testing.T) {
	var conf testConf
	assert.Nil(t, c.LoadYAML([]byte(providersData), &conf))
	assert.Nil(t, conf.Providers.Parse())

	assert.Equal(t, []string{"bar", "baz", "foo"}, conf.Providers.ProviderNames())
	assert.Equal(t, "Foo board", conf.Providers.Get("foo").Title)
	assert.Equal(t, &stats.Capability{ThreadsViewed: true, PostsSent: true, ThreadsCreated: true}, conf.Providers.Statistics("foo"))
	assert.Equal(t, &stats.Capability{PostsSent: true}, conf.Providers.Statistics("bar"))
	assert.Nil(t, conf.Providers.Statistics("baz"))
	assert.Nil(t, conf.Providers.Statistics("unknown"))
	assert.Nil(t, conf.Providers.Get("unknown"))
}

func TestConfParseFail(t *testing.T) {
	conf := Conf{
		{Name: "foo"},
		{Name: " "},
		nil,
		{Name: "foo"},
	}
	err := conf.Parse()
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "3 errors occurred")
	assert.Contains(t, err.Error(), "duplicate provider foo")

	var empty Conf
	assert.Nil(t, empty.Parse())
	assert.Empty(t, empty.ProviderNames())
}

func TestCapabilitiesForRegistry(t *testing.T) {
	conf := Conf{
		{Name: "foo", Statistics: &Statistics{ThreadsViewed: true}},
		{Name: "bar"},
	}
	assert.Nil(t, conf.Parse())

	registry, err := stats.NewRegistry(&memoryPrefs{}, conf)
	assert.Nil(t, err)
	registry.IncrementViews("foo")
	registry.IncrementViews("bar")
	registry.IncrementPosts("bar", true)
	assert.Equal(t, map[string]stats.Item{
		"foo": {Views: 1, Posts: stats.Unsupported, Threads: stats.Unsupported},
	}, registry.Items())
}

type memoryPrefs struct {
	doc stats.Document
}

func (p *memoryPrefs) LoadStatistics() (stats.Document, error) {
	return p.doc.Clone(), nil
}

func (p *memoryPrefs) SaveStatistics(doc stats.Document) error {
	p.doc = doc.Clone()
	return nil
}
