package stats

import (
	"errors"
	"fmt"
	"sync"

	c "github.com/d0ngw/chanstat/common"
)

// Registry operation names passed to ErrorHandler
const (
	OpIncrementViews = "increment_views"
	OpIncrementPosts = "increment_posts"
	OpClear          = "clear"
)

// Option configures the Registry
type Option func(p *Registry)

// WithErrorHandler sets the handler of persistence failures, PanicOnError by default
func WithErrorHandler(handler ErrorHandler) Option {
	return func(p *Registry) {
		if handler != nil {
			p.onError = handler
		}
	}
}

// Registry is the per-provider statistics counter table. The capabilities are
// read once when the registry is created. Every mutation saves the whole
// document before the next one begins.
type Registry struct {
	mu           sync.Mutex
	prefs        Preferences
	doc          Document
	capabilities map[string]Capability
	onError      ErrorHandler
}

// NewRegistry loads the stored document from prefs and snapshots the
// capabilities of all providers known by caps
func NewRegistry(prefs Preferences, caps Capabilities, opts ...Option) (*Registry, error) {
	if c.HasNil(prefs, caps) {
		return nil, errors.New("prefs and caps must not be nil")
	}
	doc, err := prefs.LoadStatistics()
	if err != nil {
		return nil, fmt.Errorf("load statistics: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}

	capabilities := map[string]Capability{}
	for _, name := range caps.ProviderNames() {
		if capability := caps.Statistics(name); capability != nil {
			capabilities[name] = *capability
		}
	}

	p := &Registry{
		prefs:        prefs,
		doc:          doc,
		capabilities: capabilities,
		onError:      PanicOnError,
	}
	for _, opt := range opts {
		opt(p)
	}
	c.Debugf("statistics registry loaded,providers:%d,capabilities:%d", len(doc), len(capabilities))
	return p, nil
}

// Capability returns the capability snapshot of provider
func (p *Registry) Capability(provider string) (Capability, bool) {
	capability, ok := p.capabilities[provider]
	return capability, ok
}

// fieldsOf returns the fields of provider, creating an empty one if absent
func (p *Registry) fieldsOf(provider string) Fields {
	fields := p.doc[provider]
	if fields == nil {
		fields = Fields{}
		p.doc[provider] = fields
	}
	return fields
}

func (p *Registry) save(op string) {
	if err := p.prefs.SaveStatistics(p.doc); err != nil {
		p.onError(op, err)
	}
}

// IncrementViews counts one viewed thread of provider. It does nothing if the
// provider does not track viewed threads.
func (p *Registry) IncrementViews(provider string) {
	capability, ok := p.capabilities[provider]
	if !ok || !capability.ThreadsViewed {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.fieldsOf(provider)[KeyViews]++
	p.save(OpIncrementViews)
}

// IncrementPosts counts one sent post of provider, and one created thread if
// newThread. The document is saved even if the provider tracks neither.
func (p *Registry) IncrementPosts(provider string, newThread bool) {
	capability, ok := p.capabilities[provider]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fields := p.fieldsOf(provider)
	if capability.PostsSent {
		fields[KeyPosts]++
	}
	if newThread && capability.ThreadsCreated {
		fields[KeyThreads]++
	}
	p.save(OpIncrementPosts)
}

// Items returns the counters of every provider present in the document
func (p *Registry) Items() map[string]Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make(map[string]Item, len(p.doc))
	for provider, fields := range p.doc {
		items[provider] = p.item(provider, fields)
	}
	return items
}

// Item returns the counters of provider, false if it is absent in the document
func (p *Registry) Item(provider string) (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fields, ok := p.doc[provider]
	if !ok {
		return Item{}, false
	}
	return p.item(provider, fields), true
}

func (p *Registry) item(provider string, fields Fields) Item {
	if capability, ok := p.capabilities[provider]; ok {
		return newItem(&capability, fields)
	}
	return newItem(nil, fields)
}

// Document returns a copy of the raw document
func (p *Registry) Document() Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Clone()
}

// Clear drops the counters of all providers
func (p *Registry) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc = Document{}
	p.save(OpClear)
}
