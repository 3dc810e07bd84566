package stats

import (
	"errors"
	"sync"
	"testing"

	c "github.com/d0ngw/chanstat/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type prefsMock struct {
	data    []byte
	saves   int
	loadErr error
	saveErr error
}

func (p *prefsMock) LoadStatistics() (Document, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	if len(p.data) == 0 {
		return nil, nil
	}
	doc := Document{}
	if err := c.JSON.Unmarshal(p.data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *prefsMock) SaveStatistics(doc Document) error {
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	data, err := c.JSON.Marshal(doc)
	if err != nil {
		return err
	}
	p.data = data
	return nil
}

type capsMock map[string]*Capability

func (p capsMock) ProviderNames() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	return names
}

func (p capsMock) Statistics(provider string) *Capability {
	return p[provider]
}

var allEnabled = &Capability{ThreadsViewed: true, PostsSent: true, ThreadsCreated: true}

func newTestRegistry(t *testing.T, prefs *prefsMock, caps capsMock, opts ...Option) *Registry {
	registry, err := NewRegistry(prefs, caps, opts...)
	require.Nil(t, err)
	return registry
}

func TestIncrementViews(t *testing.T) {
	prefs := &prefsMock{}
	registry := newTestRegistry(t, prefs, capsMock{"foo": allEnabled})

	for i := 0; i < 5; i++ {
		registry.IncrementViews("foo")
	}
	item, ok := registry.Item("foo")
	assert.True(t, ok)
	assert.EqualValues(t, 5, item.Views)
	assert.EqualValues(t, 0, item.Posts)
	assert.EqualValues(t, 0, item.Threads)
	assert.Equal(t, 5, prefs.saves)
	assert.Equal(t, `{"foo":{"views":5}}`, string(prefs.data))
}

func TestIncrementViewsDisabled(t *testing.T) {
	prefs := &prefsMock{data: []byte(`{"bar":{"posts":1}}`)}
	registry := newTestRegistry(t, prefs, capsMock{
		"bar":  {PostsSent: true},
		"none": nil,
	})

	registry.IncrementViews("bar")
	registry.IncrementViews("none")
	registry.IncrementViews("unknown")

	assert.Equal(t, 0, prefs.saves)
	assert.Equal(t, `{"bar":{"posts":1}}`, string(prefs.data))
	assert.Equal(t, Document{"bar": {KeyPosts: 1}}, registry.Document())
	_, ok := registry.Item("none")
	assert.False(t, ok)
}

func TestIncrementPosts(t *testing.T) {
	prefs := &prefsMock{}
	registry := newTestRegistry(t, prefs, capsMock{
		"foo": allEnabled,
		"bar": {ThreadsViewed: true, PostsSent: true},
	})

	registry.IncrementPosts("foo", true)
	registry.IncrementPosts("foo", false)
	registry.IncrementPosts("bar", true)
	registry.IncrementPosts("unknown", true)

	items := registry.Items()
	assert.Equal(t, Item{Views: 0, Posts: 2, Threads: 1}, items["foo"])
	assert.Equal(t, Item{Views: 0, Posts: 1, Threads: Unsupported}, items["bar"])
	_, ok := items["unknown"]
	assert.False(t, ok)
	assert.Equal(t, 3, prefs.saves)

	doc := registry.Document()
	_, ok = doc["bar"][KeyThreads]
	assert.False(t, ok)
}

func TestIncrementPostsSavesWithoutWrite(t *testing.T) {
	prefs := &prefsMock{}
	registry := newTestRegistry(t, prefs, capsMock{"quiet": {ThreadsViewed: true}})

	registry.IncrementPosts("quiet", true)

	assert.Equal(t, 1, prefs.saves)
	assert.Equal(t, `{"quiet":{}}`, string(prefs.data))
	assert.Equal(t, map[string]Item{"quiet": {Views: 0, Posts: Unsupported, Threads: Unsupported}}, registry.Items())
}

func TestItemsUnknownProvider(t *testing.T) {
	prefs := &prefsMock{data: []byte(`{"gone":{"views":7,"posts":3},"foo":{"threads":2}}`)}
	registry := newTestRegistry(t, prefs, capsMock{"foo": {ThreadsCreated: true}})

	registry.IncrementViews("gone")
	registry.IncrementPosts("gone", true)

	items := registry.Items()
	assert.Equal(t, UnsupportedItem, items["gone"])
	assert.Equal(t, Item{Views: Unsupported, Posts: Unsupported, Threads: 2}, items["foo"])
	assert.Equal(t, 0, prefs.saves)
}

func TestClear(t *testing.T) {
	prefs := &prefsMock{data: []byte(`{"foo":{"views":1},"old":{"posts":4}}`)}
	registry := newTestRegistry(t, prefs, capsMock{"foo": allEnabled})

	registry.Clear()
	assert.Empty(t, registry.Items())
	assert.Equal(t, 1, prefs.saves)
	assert.Equal(t, `{}`, string(prefs.data))

	registry.IncrementViews("foo")
	assert.Equal(t, map[string]Item{"foo": {Views: 1}}, registry.Items())
}

func TestRoundTrip(t *testing.T) {
	prefs := &prefsMock{}
	caps := capsMock{"foo": allEnabled, "bar": {PostsSent: true}}
	registry := newTestRegistry(t, prefs, caps)

	registry.IncrementViews("foo")
	registry.IncrementPosts("foo", true)
	registry.IncrementPosts("foo", true)
	registry.IncrementPosts("bar", false)

	reloaded := newTestRegistry(t, &prefsMock{data: prefs.data}, caps)
	assert.Equal(t, registry.Items(), reloaded.Items())
	assert.Equal(t, registry.Document(), reloaded.Document())
	assert.Equal(t, Item{Views: 1, Posts: 2, Threads: 2}, reloaded.Items()["foo"])
}

func TestDocumentIsCopy(t *testing.T) {
	registry := newTestRegistry(t, &prefsMock{}, capsMock{"foo": allEnabled})
	registry.IncrementViews("foo")

	doc := registry.Document()
	doc["foo"][KeyViews] = 100
	doc["other"] = Fields{}

	assert.Equal(t, Document{"foo": {KeyViews: 1}}, registry.Document())
}

func TestCapabilitySnapshot(t *testing.T) {
	caps := capsMock{"foo": allEnabled}
	registry := newTestRegistry(t, &prefsMock{}, caps)

	caps["late"] = allEnabled
	registry.IncrementViews("late")
	_, ok := registry.Capability("late")
	assert.False(t, ok)

	capability, ok := registry.Capability("foo")
	assert.True(t, ok)
	assert.Equal(t, *allEnabled, capability)
}

func TestNewRegistryFail(t *testing.T) {
	_, err := NewRegistry(nil, capsMock{})
	assert.NotNil(t, err)

	loadErr := errors.New("broken")
	_, err = NewRegistry(&prefsMock{loadErr: loadErr}, capsMock{})
	assert.True(t, errors.Is(err, loadErr))

	_, err = NewRegistry(&prefsMock{data: []byte(`{"foo":"bar"}`)}, capsMock{})
	assert.NotNil(t, err)
}

func TestErrorHandlers(t *testing.T) {
	saveErr := errors.New("disk full")

	registry := newTestRegistry(t, &prefsMock{saveErr: saveErr}, capsMock{"foo": allEnabled})
	assert.Panics(t, func() {
		registry.IncrementViews("foo")
	})
	// the lock is released after the panic
	assert.Panics(t, func() {
		registry.Clear()
	})

	var ops []string
	prefs := &prefsMock{saveErr: saveErr}
	registry = newTestRegistry(t, prefs, capsMock{"foo": allEnabled}, WithErrorHandler(func(op string, err error) {
		assert.Equal(t, saveErr, err)
		ops = append(ops, op)
	}))
	registry.IncrementViews("foo")
	registry.IncrementPosts("foo", true)
	registry.Clear()
	assert.Equal(t, []string{OpIncrementViews, OpIncrementPosts, OpClear}, ops)

	registry = newTestRegistry(t, prefs, capsMock{"foo": allEnabled}, WithErrorHandler(LogOnError))
	registry.IncrementViews("foo")
	registry.IncrementViews("foo")
	assert.Equal(t, Item{Views: 2}, registry.Items()["foo"])

	prefs.saveErr = nil
	registry.IncrementPosts("foo", false)
	assert.Equal(t, `{"foo":{"posts":1,"views":2}}`, string(prefs.data))
}

func TestErrorHandlerByName(t *testing.T) {
	for _, name := range []string{"", OnErrorPanic, OnErrorLog} {
		handler, err := ErrorHandlerByName(name)
		assert.Nil(t, err)
		assert.NotNil(t, handler)
	}
	_, err := ErrorHandlerByName("ignore")
	assert.NotNil(t, err)
}

func TestConcurrentIncrement(t *testing.T) {
	prefs := &prefsMock{}
	registry := newTestRegistry(t, prefs, capsMock{"foo": allEnabled})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				registry.IncrementViews("foo")
				registry.IncrementPosts("foo", j%2 == 0)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, Item{Views: 1000, Posts: 1000, Threads: 500}, registry.Items()["foo"])
	assert.Equal(t, 2000, prefs.saves)
}

func TestViewsPostsThreads(t *testing.T) {
	registry := newTestRegistry(t, &prefsMock{}, capsMock{"foo": allEnabled})
	registry.IncrementViews("foo")
	registry.IncrementPosts("foo", true)
	registry.IncrementPosts("foo", true)
	assert.Equal(t, Item{Views: 1, Posts: 2, Threads: 2}, registry.Items()["foo"])
}
