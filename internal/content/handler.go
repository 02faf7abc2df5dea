package content

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"lesson-media/internal/video"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes lesson and media HTTP endpoints using go-chi.
type Handler struct {
	svc        *Service
	log        *slog.Logger
	uploadsDir string
}

// NewHandler returns a Handler that uses the given Service and Logger and
// serves self-hosted files from uploadsDir.
func NewHandler(svc *Service, log *slog.Logger, uploadsDir string) *Handler {
	return &Handler{svc: svc, log: log, uploadsDir: uploadsDir}
}

// CreateLesson handles POST /lessons.
func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var l Lesson
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		h.log.Debug("invalid lesson body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	saved, err := h.svc.SaveLesson(l)
	if err != nil {
		if errors.Is(err, ErrInvalidLesson) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		h.log.Error("save lesson failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Debug("lesson saved",
		slog.String("lesson_id", saved.ID.String()),
		slog.Int("attachments", len(saved.Attachments)))
	h.writeJSON(w, http.StatusCreated, saved)
}

// ListLessons handles GET /lessons.
func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.ListSecuredLessons())
}

// GetLesson handles GET /lessons/{lesson_id}. The response carries signed
// media URLs valid for the signer's default TTL.
func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := lessonID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	l, ok := h.svc.GetSecuredLesson(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

// DeleteLesson handles DELETE /lessons/{lesson_id}.
func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := lessonID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteLesson(id); err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.log.Error("delete lesson failed", slog.String("lesson_id", id.String()), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Info("lesson deleted", slog.String("lesson_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ResolveVideo handles GET /videos/resolve?url=...&ttl=seconds.
func (h *Handler) ResolveVideo(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var ttl time.Duration
	if s := r.URL.Query().Get("ttl"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ttl = time.Duration(n) * time.Second
	}

	h.writeJSON(w, http.StatusOK, h.svc.ResolveVideo(raw, ttl))
}

// ServeUpload handles GET /uploads/*. The request must carry a valid,
// unexpired sig/exp pair issued for the same path.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	raw, sig, exp, ok := video.SplitSignedURL(signedTarget(r.URL))
	if !ok || !h.svc.VerifyGrant(raw, sig, exp) {
		h.log.Info("upload access denied", slog.String("path", r.URL.Path))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	name := path.Clean("/" + chi.URLParam(r, "*"))
	http.ServeFile(w, r, filepath.Join(h.uploadsDir, filepath.FromSlash(name)))
}

// signedTarget rebuilds the URL form grants are signed over: the unescaped
// path followed by the query as sent. Browsers percent-encode the path of a
// stored URL such as "/uploads/my doc.pdf" before requesting it.
func signedTarget(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response failed", slog.String("error", err.Error()))
	}
}

func lessonID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "lesson_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
