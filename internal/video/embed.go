package video

import (
	"regexp"
	"strings"
)

const (
	youTubeEmbedBase = "https://www.youtube.com/embed/"
	vimeoPlayerBase  = "https://player.vimeo.com/video/"
)

var (
	// youTubePatterns are tried in order; the id runs up to the next '&' or '?'.
	youTubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`watch\?v=([^&?]+)`),
		regexp.MustCompile(`youtu\.be/([^&?]+)`),
		regexp.MustCompile(`/embed/([^&?]+)`),
		regexp.MustCompile(`/shorts/([^&?]+)`),
		regexp.MustCompile(`/v/([^&?]+)`),
	}

	vimeoPattern      = regexp.MustCompile(`vimeo\.com/(\d+)`)
	cloudflarePattern = regexp.MustCompile(`(?:cloudflarestream\.com|videodelivery\.net)/([^/?#]+)`)
)

// YouTubeEmbedURL derives the canonical embed URL for a YouTube link.
// It reports false when no known URL shape matches.
func YouTubeEmbedURL(rawURL string) (string, bool) {
	for _, re := range youTubePatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return youTubeEmbedBase + m[1], true
		}
	}
	return "", false
}

// VimeoEmbedURL derives the player URL for a numeric Vimeo link.
func VimeoEmbedURL(rawURL string) (string, bool) {
	m := vimeoPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return vimeoPlayerBase + m[1], true
}

// CloudflareVideoID extracts the video id (first path segment) from a
// Cloudflare Stream URL. A bare id is returned as-is.
func CloudflareVideoID(rawURL string) (string, bool) {
	if m := cloudflarePattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	if rawURL != "" && !strings.ContainsAny(rawURL, "/.:?&") {
		return rawURL, true
	}
	return "", false
}
