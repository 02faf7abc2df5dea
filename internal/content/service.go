package content

import (
	"time"

	"lesson-media/internal/video"

	"github.com/google/uuid"
)

// VerificationRecorder receives the outcome of every grant verification.
type VerificationRecorder interface {
	ObserveVerification(ok bool)
}

// Service serves lessons with freshly signed media URLs and delegates storage
// to Repository. Stored URLs are never rewritten; signing happens per request.
type Service struct {
	repo     Repository
	signer   *video.Signer
	recorder VerificationRecorder
}

// NewService returns a Service backed by repo that signs with signer.
// recorder may be nil.
func NewService(repo Repository, signer *video.Signer, recorder VerificationRecorder) *Service {
	if signer == nil {
		panic("content: nil signer")
	}
	return &Service{repo: repo, signer: signer, recorder: recorder}
}

// SaveLesson stores l with its raw URLs.
func (s *Service) SaveLesson(l Lesson) (Lesson, error) {
	return s.repo.SaveLesson(l)
}

// DeleteLesson removes the lesson with the given ID.
func (s *Service) DeleteLesson(id uuid.UUID) error {
	return s.repo.DeleteLesson(id)
}

// GetSecuredLesson returns the lesson with signed video and attachment URLs.
func (s *Service) GetSecuredLesson(id uuid.UUID) (*Lesson, bool) {
	l, ok := s.repo.GetLesson(id)
	if !ok {
		return nil, false
	}
	return Secure(s.signer, &l), true
}

// ListSecuredLessons returns every stored lesson in display order, secured.
func (s *Service) ListSecuredLessons() []Lesson {
	lessons := s.repo.ListLessons()
	out := make([]Lesson, 0, len(lessons))
	for i := range lessons {
		out = append(out, *Secure(s.signer, &lessons[i]))
	}
	return out
}

// ResolveVideo classifies rawURL and issues a grant for it. ttl <= 0 uses the
// signer's default.
func (s *Service) ResolveVideo(rawURL string, ttl time.Duration) video.Grant {
	return s.signer.Issue(rawURL, s.signer.Classify(rawURL), ttl)
}

// VerifyGrant checks a presented self-hosted signature.
func (s *Service) VerifyGrant(rawURL, sig string, exp int64) bool {
	ok := s.signer.Verify(rawURL, sig, exp)
	if s.recorder != nil {
		s.recorder.ObserveVerification(ok)
	}
	return ok
}

// LessonCount returns the number of stored lessons.
func (s *Service) LessonCount() int {
	return s.repo.LessonCount()
}
