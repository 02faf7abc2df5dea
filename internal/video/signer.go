package video

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// DefaultTTL is how long a signed grant stays valid when no TTL is given.
const DefaultTTL = time.Hour

const cloudflareDeliveryBase = "https://videodelivery.net/"

// SigningConfig carries the secrets and defaults used for signing. It is built
// once at startup and never mutated; any secret may be empty, in which case the
// affected content is served unsigned.
type SigningConfig struct {
	CloudflareSigningKey string
	CloudflareKeyID      string
	URLSigningSecret     string
	StorageHost          string
	DefaultTTL           time.Duration
}

// Grant is a time-limited access URL produced by Signer.Issue.
type Grant struct {
	URL       string       `json:"url"`
	Kind      ProviderKind `json:"videoType"`
	ExpiresAt int64        `json:"expiresAt"`
	Signed    bool         `json:"signed"`
}

// Degraded reports whether the grant should have carried a signature but
// was issued unsigned because the secret was missing.
func (g Grant) Degraded() bool {
	return !g.Signed && (g.Kind == SelfHosted || g.Kind == CloudflareStream)
}

// Signer classifies, rewrites and signs video and attachment URLs.
// It holds only read-only state and is safe for concurrent use.
type Signer struct {
	cfg        SigningConfig
	classifier *Classifier
	log        *slog.Logger
	now        func() time.Time
	observe    func(Grant)
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock replaces the time source (tests use a fixed clock).
func WithClock(now func() time.Time) Option {
	return func(s *Signer) { s.now = now }
}

// WithObserver registers fn to be called with every issued grant. Grants may
// be issued from several goroutines at once, so fn must be safe for
// concurrent use.
func WithObserver(fn func(Grant)) Option {
	return func(s *Signer) { s.observe = fn }
}

// NewSigner returns a Signer for cfg. log may be nil.
func NewSigner(cfg SigningConfig, log *slog.Logger, opts ...Option) *Signer {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Signer{
		cfg:        cfg,
		classifier: NewClassifier(cfg.StorageHost),
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultTTL returns the TTL applied when callers pass ttl <= 0.
func (s *Signer) DefaultTTL() time.Duration {
	return s.cfg.DefaultTTL
}

// Classify returns the provider kind of rawURL.
func (s *Signer) Classify(rawURL string) ProviderKind {
	return s.classifier.Classify(rawURL)
}

// Sign returns the URL of the grant issued for rawURL.
func (s *Signer) Sign(rawURL string, kind ProviderKind, ttl time.Duration) string {
	return s.Issue(rawURL, kind, ttl).URL
}

// Issue builds an access grant for rawURL according to kind. Public providers
// are rewritten to their embed form, Cloudflare Stream and self-hosted content
// is signed with an HMAC over the target and expiry, anything else passes
// through. A missing secret yields an unsigned grant and a warning.
func (s *Signer) Issue(rawURL string, kind ProviderKind, ttl time.Duration) Grant {
	if ttl <= 0 {
		ttl = s.cfg.DefaultTTL
	}
	exp := s.now().Add(ttl).Unix()
	g := Grant{URL: rawURL, Kind: kind, ExpiresAt: exp}

	switch kind {
	case YouTube:
		if embed, ok := YouTubeEmbedURL(rawURL); ok {
			g.URL = embed
		}
	case Vimeo:
		if embed, ok := VimeoEmbedURL(rawURL); ok {
			g.URL = embed
		}
	case CloudflareStream:
		g.URL, g.Signed = s.signCloudflare(rawURL, exp)
	case SelfHosted:
		g.URL, g.Signed = s.signSelfHosted(rawURL, exp)
	}
	if s.observe != nil {
		s.observe(g)
	}
	return g
}

func (s *Signer) signCloudflare(rawURL string, exp int64) (string, bool) {
	videoID, ok := CloudflareVideoID(rawURL)
	if !ok {
		s.log.Warn("cloudflare stream url without video id, serving as-is",
			slog.String("provider", string(CloudflareStream)))
		return rawURL, false
	}
	manifest := cloudflareDeliveryBase + videoID + "/manifest/video.m3u8"

	if s.cfg.CloudflareSigningKey == "" || s.cfg.CloudflareKeyID == "" {
		s.log.Warn("cloudflare stream signing key not configured, serving unsigned manifest",
			slog.String("provider", string(CloudflareStream)),
			slog.String("video_id", videoID))
		return manifest, false
	}

	token := computeSignature(s.cfg.CloudflareSigningKey, videoID, exp)
	return manifest + "?token=" + hex.EncodeToString(token) + "&exp=" + strconv.FormatInt(exp, 10), true
}

func (s *Signer) signSelfHosted(rawURL string, exp int64) (string, bool) {
	if s.cfg.URLSigningSecret == "" {
		s.log.Warn("url signing secret not configured, serving unsigned url",
			slog.String("provider", string(SelfHosted)))
		return rawURL, false
	}

	sig := computeSignature(s.cfg.URLSigningSecret, rawURL, exp)
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "sig=" + hex.EncodeToString(sig) + "&exp=" + strconv.FormatInt(exp, 10), true
}

// computeSignature returns HMAC-SHA256(key, target || exp).
func computeSignature(key, target string, exp int64) []byte {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(target))
	mac.Write([]byte(strconv.FormatInt(exp, 10)))
	return mac.Sum(nil)
}
