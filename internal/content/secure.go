package content

import (
	"sync"

	"lesson-media/internal/video"
)

// Secure returns a copy of lesson that is safe to hand to a client for the
// signer's default TTL. The primary video is classified and signed according
// to its provider and its kind is reported in VideoType. Attachments are
// always signed as self-hosted content, without classification. The input
// lesson is not modified and a nil lesson yields nil.
func Secure(s *video.Signer, lesson *Lesson) *Lesson {
	if lesson == nil {
		return nil
	}
	out := lesson.clone()
	ttl := s.DefaultTTL()

	out.VideoType = s.Classify(lesson.VideoURL)
	out.VideoURL = s.Sign(lesson.VideoURL, out.VideoType, ttl)

	var wg sync.WaitGroup
	for i := range out.Attachments {
		wg.Add(1)
		go func(a *Attachment) {
			defer wg.Done()
			a.URL = s.Sign(a.URL, video.SelfHosted, ttl)
		}(&out.Attachments[i])
	}
	wg.Wait()

	return &out
}
