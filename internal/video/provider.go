package video

import (
	"net/url"
	"strings"
)

// ProviderKind classifies where a video URL is hosted.
type ProviderKind string

const (
	YouTube          ProviderKind = "youtube"
	Vimeo            ProviderKind = "vimeo"
	CloudflareStream ProviderKind = "cloudflare_stream"
	SelfHosted       ProviderKind = "self_hosted"
	External         ProviderKind = "external"
)

// DefaultStorageHost is matched for self-hosted content when no storage host is configured.
const DefaultStorageHost = "localhost"

const uploadsPrefix = "/uploads/"

// rule pairs a predicate with the kind it yields. Rules are evaluated in order
// and the first match wins.
type rule struct {
	kind  ProviderKind
	match func(rawURL string) bool
}

// Classifier maps raw video URLs to a ProviderKind.
type Classifier struct {
	storageHost string
	rules       []rule
}

// NewClassifier returns a Classifier that treats URLs containing storageHost
// (or under /uploads/) as self-hosted. An empty storageHost uses DefaultStorageHost.
func NewClassifier(storageHost string) *Classifier {
	if storageHost == "" {
		storageHost = DefaultStorageHost
	}
	c := &Classifier{storageHost: storageHost}
	c.rules = []rule{
		{YouTube, containsAny("youtube.com", "youtu.be")},
		{Vimeo, containsAny("vimeo.com")},
		{CloudflareStream, containsAny("cloudflarestream.com", "videodelivery.net")},
		{SelfHosted, c.isSelfHosted},
	}
	return c
}

// Classify returns the provider kind for rawURL. Empty or unmatched input is External.
func (c *Classifier) Classify(rawURL string) ProviderKind {
	if rawURL == "" {
		return External
	}
	for _, r := range c.rules {
		if r.match(rawURL) {
			return r.kind
		}
	}
	return External
}

// StorageHost returns the host matched for self-hosted content.
func (c *Classifier) StorageHost() string {
	return c.storageHost
}

func (c *Classifier) isSelfHosted(rawURL string) bool {
	if strings.HasPrefix(rawURL, uploadsPrefix) {
		return true
	}
	if u, err := url.Parse(rawURL); err == nil && strings.HasPrefix(u.Path, uploadsPrefix) {
		return true
	}
	return strings.Contains(rawURL, c.storageHost)
}

func containsAny(substrs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range substrs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}
