package content

import (
	"lesson-media/internal/video"

	"github.com/google/uuid"
)

// Lesson is a unit of course content with a primary video and downloadable
// attachments. URLs are stored exactly as the author entered them.
type Lesson struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"courseId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	Duration    int       `json:"duration,omitempty"` // seconds
	Order       int       `json:"order,omitempty"`

	// VideoType is resolved per request by Secure and never stored.
	VideoType video.ProviderKind `json:"videoType,omitempty"`

	Attachments []Attachment `json:"attachments"`
}

// Attachment is a file offered alongside a lesson (slides, worksheets, ...).
type Attachment struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	MimeType string    `json:"mimeType,omitempty"`
	Size     int64     `json:"size,omitempty"` // bytes
}

// clone returns a copy of l that shares no slices with it.
func (l Lesson) clone() Lesson {
	out := l
	if l.Attachments != nil {
		out.Attachments = make([]Attachment, len(l.Attachments))
		copy(out.Attachments, l.Attachments)
	}
	return out
}
