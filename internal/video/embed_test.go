package video

import "testing"

func TestYouTubeEmbedURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"watch with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/abc123", "https://www.youtube.com/embed/abc123", true},
		{"short link with query", "https://youtu.be/abc123?si=xyz", "https://www.youtube.com/embed/abc123", true},
		{"embed", "https://www.youtube.com/embed/abc123", "https://www.youtube.com/embed/abc123", true},
		{"shorts", "https://youtube.com/shorts/zzz999", "https://www.youtube.com/embed/zzz999", true},
		{"legacy v", "https://www.youtube.com/v/legacy1?version=3", "https://www.youtube.com/embed/legacy1", true},
		{"channel page", "https://www.youtube.com/@someone", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := YouTubeEmbedURL(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("YouTubeEmbedURL(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestVimeoEmbedURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"numeric", "https://vimeo.com/76979871", "https://player.vimeo.com/video/76979871", true},
		{"with hash", "https://vimeo.com/76979871#t=10", "https://player.vimeo.com/video/76979871", true},
		{"channel", "https://vimeo.com/channels/staffpicks", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VimeoEmbedURL(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("VimeoEmbedURL(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCloudflareVideoID(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://videodelivery.net/5d5bc37ffcf54c9b82e996823bffbb81/manifest/video.m3u8", "5d5bc37ffcf54c9b82e996823bffbb81", true},
		{"https://customer-abc.cloudflarestream.com/ea95132c/iframe", "ea95132c", true},
		{"https://videodelivery.net/eyJhbGciOi.J9-abc_def/manifest/video.m3u8?clientBandwidthHint=2", "eyJhbGciOi.J9-abc_def", true},
		{"https://videodelivery.net/ea95132c?token=x", "ea95132c", true},
		{"ea95132c", "ea95132c", true},
		{"https://videodelivery.net/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := CloudflareVideoID(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CloudflareVideoID(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
