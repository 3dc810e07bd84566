// Package stats keeps per-provider usage counters (thread views, sent posts,
// created threads) in a single document persisted through Preferences.
package stats

// Counter keys in the persisted document
const (
	KeyViews   = "views"
	KeyPosts   = "posts"
	KeyThreads = "threads"
)

// Unsupported is reported for a counter the provider does not track
const Unsupported int64 = -1

// Fields is the raw counters of one provider. A missing key means the counter
// was never written.
type Fields map[string]int64

// Document is the whole persisted statistics blob keyed by provider name
type Document map[string]Fields

// Clone returns a deep copy of the document
func (p Document) Clone() Document {
	if p == nil {
		return nil
	}
	doc := make(Document, len(p))
	for provider, fields := range p {
		if fields == nil {
			doc[provider] = nil
			continue
		}
		cp := make(Fields, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		doc[provider] = cp
	}
	return doc
}

// Capability tells which counters a provider supports
type Capability struct {
	ThreadsViewed  bool
	PostsSent      bool
	ThreadsCreated bool
}

// Item is the read-back counters of one provider, Unsupported for the counters
// the provider does not track
type Item struct {
	Views   int64 `json:"views"`
	Posts   int64 `json:"posts"`
	Threads int64 `json:"threads"`
}

// UnsupportedItem is the item of a provider without capability
var UnsupportedItem = Item{Views: Unsupported, Posts: Unsupported, Threads: Unsupported}

func newItem(capability *Capability, fields Fields) Item {
	if capability == nil {
		return UnsupportedItem
	}
	item := UnsupportedItem
	if capability.ThreadsViewed {
		item.Views = fields[KeyViews]
	}
	if capability.PostsSent {
		item.Posts = fields[KeyPosts]
	}
	if capability.ThreadsCreated {
		item.Threads = fields[KeyThreads]
	}
	return item
}

// Preferences is the storage of the statistics document. It is used as a
// plain get/set blob store.
type Preferences interface {
	// LoadStatistics returns the stored document, nil if nothing was stored
	LoadStatistics() (Document, error)
	// SaveStatistics replaces the stored document
	SaveStatistics(doc Document) error
}

// Capabilities supplies the statistics capability of the available providers
type Capabilities interface {
	// ProviderNames returns the names of the available providers
	ProviderNames() []string
	// Statistics returns the capability of provider, nil if the provider has none
	Statistics(provider string) *Capability
}
