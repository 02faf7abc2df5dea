package content

import (
	"errors"
	"sync"
	"testing"

	"lesson-media/internal/video"

	"github.com/google/uuid"
)

func TestInMemoryRepository_SaveLesson(t *testing.T) {
	repo := NewInMemoryRepository()

	t.Run("assigns_ids", func(t *testing.T) {
		saved, err := repo.SaveLesson(Lesson{
			Title:       "Intro",
			VideoURL:    "https://youtu.be/abc",
			Attachments: []Attachment{{Name: "a", URL: "/uploads/a.pdf"}},
		})
		if err != nil {
			t.Fatalf("SaveLesson: %v", err)
		}
		if saved.ID == uuid.Nil || saved.Attachments[0].ID == uuid.Nil {
			t.Errorf("expected ids to be assigned: %+v", saved)
		}
		got, ok := repo.GetLesson(saved.ID)
		if !ok || got.Title != "Intro" || got.VideoURL != "https://youtu.be/abc" {
			t.Errorf("GetLesson: ok=%v got %+v", ok, got)
		}
	})

	t.Run("replaces_existing", func(t *testing.T) {
		id := uuid.New()
		_, _ = repo.SaveLesson(Lesson{ID: id, Title: "v1"})
		_, _ = repo.SaveLesson(Lesson{ID: id, Title: "v2"})
		got, _ := repo.GetLesson(id)
		if got.Title != "v2" {
			t.Errorf("expected replacement, got %q", got.Title)
		}
	})

	t.Run("rejects_missing_title", func(t *testing.T) {
		_, err := repo.SaveLesson(Lesson{Title: "  "})
		if !errors.Is(err, ErrInvalidLesson) {
			t.Errorf("expected ErrInvalidLesson, got %v", err)
		}
	})

	t.Run("drops_video_type", func(t *testing.T) {
		saved, _ := repo.SaveLesson(Lesson{Title: "typed", VideoType: video.YouTube})
		if saved.VideoType != "" {
			t.Errorf("VideoType should not be stored, got %q", saved.VideoType)
		}
	})
}

func TestInMemoryRepository_copies(t *testing.T) {
	repo := NewInMemoryRepository()
	in := Lesson{Title: "Copy", Attachments: []Attachment{{Name: "a", URL: "/uploads/a.pdf"}}}
	saved, _ := repo.SaveLesson(in)

	in.Attachments[0].URL = "changed-by-caller"
	saved.Attachments[0].URL = "changed-by-caller"
	got, _ := repo.GetLesson(saved.ID)
	got.Attachments[0].URL = "changed-by-reader"

	again, _ := repo.GetLesson(saved.ID)
	if again.Attachments[0].URL != "/uploads/a.pdf" {
		t.Errorf("stored lesson shares memory with callers: %q", again.Attachments[0].URL)
	}
}

func TestInMemoryRepository_ListLessons(t *testing.T) {
	repo := NewInMemoryRepository()
	_, _ = repo.SaveLesson(Lesson{Title: "c", Order: 2})
	_, _ = repo.SaveLesson(Lesson{Title: "b", Order: 1})
	_, _ = repo.SaveLesson(Lesson{Title: "a", Order: 1})

	got := repo.ListLessons()
	if len(got) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(got))
	}
	if got[0].Title != "a" || got[1].Title != "b" || got[2].Title != "c" {
		t.Errorf("unexpected order: %q %q %q", got[0].Title, got[1].Title, got[2].Title)
	}
	if repo.LessonCount() != 3 {
		t.Errorf("LessonCount = %d, want 3", repo.LessonCount())
	}
}

func TestInMemoryRepository_DeleteLesson(t *testing.T) {
	repo := NewInMemoryRepository()
	saved, _ := repo.SaveLesson(Lesson{Title: "gone"})

	if err := repo.DeleteLesson(saved.ID); err != nil {
		t.Fatalf("DeleteLesson: %v", err)
	}
	if _, ok := repo.GetLesson(saved.ID); ok {
		t.Error("lesson still present after delete")
	}
	if err := repo.DeleteLesson(saved.ID); !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestInMemoryRepository_concurrent(t *testing.T) {
	repo := NewInMemoryRepository()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repo.SaveLesson(Lesson{Title: "x"})
		}()
		go func() {
			defer wg.Done()
			_ = repo.ListLessons()
		}()
	}
	wg.Wait()
	if repo.LessonCount() != 20 {
		t.Errorf("LessonCount = %d, want 20", repo.LessonCount())
	}
}
