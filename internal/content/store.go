package content

import "github.com/google/uuid"

// Store is the persistence abstraction for lessons.
// The relational store used in production plugs in here; the Repository
// guards it with its own lock, so implementations need not be concurrency-safe.
type Store interface {
	GetLesson(id uuid.UUID) (*Lesson, bool)
	SetLesson(l *Lesson)
	DeleteLesson(id uuid.UUID)
	ListLessonIDs() []uuid.UUID
}

// InMemoryStore is an in-memory implementation of Store.
type InMemoryStore struct {
	lessons map[uuid.UUID]*Lesson
}

// NewInMemoryStore returns a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		lessons: make(map[uuid.UUID]*Lesson),
	}
}

// GetLesson implements Store.GetLesson.
func (s *InMemoryStore) GetLesson(id uuid.UUID) (*Lesson, bool) {
	l, ok := s.lessons[id]
	return l, ok
}

// SetLesson implements Store.SetLesson.
func (s *InMemoryStore) SetLesson(l *Lesson) {
	s.lessons[l.ID] = l
}

// DeleteLesson implements Store.DeleteLesson.
func (s *InMemoryStore) DeleteLesson(id uuid.UUID) {
	delete(s.lessons, id)
}

// ListLessonIDs implements Store.ListLessonIDs.
func (s *InMemoryStore) ListLessonIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.lessons))
	for id := range s.lessons {
		ids = append(ids, id)
	}
	return ids
}
