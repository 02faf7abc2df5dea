package content

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the concurrency-safe contract for accessing and mutating
// stored lessons. Lessons go in and come out as copies; callers never share
// memory with the store.
type Repository interface {
	// SaveLesson creates or replaces a lesson. A lesson without an ID, or an
	// attachment without one, is assigned a fresh UUID.
	SaveLesson(l Lesson) (Lesson, error)

	// GetLesson returns the stored lesson with the given ID.
	GetLesson(id uuid.UUID) (Lesson, bool)

	// ListLessons returns all lessons ordered by Order, then Title.
	ListLessons() []Lesson

	// DeleteLesson removes a lesson. It returns ErrLessonNotFound if absent.
	DeleteLesson(id uuid.UUID) error

	// LessonCount returns the number of stored lessons. Used for metrics.
	LessonCount() int
}

var (
	// ErrLessonNotFound is returned when a lesson ID is not in the store.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrInvalidLesson is returned when a lesson fails validation on save.
	ErrInvalidLesson = errors.New("invalid lesson")
)

// InMemoryRepository is a concurrency-safe implementation of Repository.
// It uses a Store for persistence; by default that is an InMemoryStore.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store Store
}

// NewInMemoryRepository constructs a new repository with a default in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore())
}

// NewInMemoryRepositoryWithStore constructs a repository that uses the given Store.
func NewInMemoryRepositoryWithStore(store Store) *InMemoryRepository {
	return &InMemoryRepository{store: store}
}

// SaveLesson implements Repository.SaveLesson.
func (r *InMemoryRepository) SaveLesson(l Lesson) (Lesson, error) {
	if strings.TrimSpace(l.Title) == "" {
		return Lesson{}, ErrInvalidLesson
	}

	stored := l.clone()
	// VideoType is derived per request and never persisted.
	stored.VideoType = ""
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	for i := range stored.Attachments {
		if stored.Attachments[i].ID == uuid.Nil {
			stored.Attachments[i].ID = uuid.New()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.SetLesson(&stored)
	return stored.clone(), nil
}

// GetLesson implements Repository.GetLesson.
func (r *InMemoryRepository) GetLesson(id uuid.UUID) (Lesson, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.store.GetLesson(id)
	if !ok {
		return Lesson{}, false
	}
	return l.clone(), true
}

// ListLessons implements Repository.ListLessons.
func (r *InMemoryRepository) ListLessons() []Lesson {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.store.ListLessonIDs()
	out := make([]Lesson, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.store.GetLesson(id); ok {
			out = append(out, l.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// DeleteLesson implements Repository.DeleteLesson.
func (r *InMemoryRepository) DeleteLesson(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.GetLesson(id); !ok {
		return ErrLessonNotFound
	}
	r.store.DeleteLesson(id)
	return nil
}

// LessonCount implements Repository.LessonCount.
func (r *InMemoryRepository) LessonCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store.ListLessonIDs())
}
