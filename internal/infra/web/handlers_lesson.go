package web

import (
	"encoding/json"
	"net/http"
	"time"

	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type lessonRequest struct {
	Name          *string `json:"name"`
	CourseID      *string `json:"course_id"`
	Description   *string `json:"description"`
	Preview       *string `json:"preview"`
	VideoLink     *string `json:"video_link"`
	MaterialsLink *string `json:"materials_link"`
}

func (r lessonRequest) input() usecase.LessonInput {
	return usecase.LessonInput{
		Name:          r.Name,
		CourseID:      r.CourseID,
		Description:   r.Description,
		Preview:       r.Preview,
		VideoLink:     r.VideoLink,
		MaterialsLink: r.MaterialsLink,
	}
}

type lessonResponse struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Preview       string    `json:"preview,omitempty"`
	VideoLink     string    `json:"video_link,omitempty"`
	MaterialsLink string    `json:"materials_link,omitempty"`
	OwnerID       string    `json:"owner"`
	CreatedAt     time.Time `json:"created_at"`
}

func toLessonResponse(l *model.Lesson) lessonResponse {
	return lessonResponse{
		ID:            l.ID,
		CourseID:      l.CourseID,
		Name:          l.Name,
		Description:   l.Description,
		Preview:       l.Preview,
		VideoLink:     l.VideoLink,
		MaterialsLink: l.MaterialsLink,
		OwnerID:       l.OwnerID,
		CreatedAt:     l.CreatedAt,
	}
}

func (s *Server) handleLessonCreate(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}
	lesson, err := s.lesson.Create(r.Context(), actorFrom(r.Context()), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLessonResponse(lesson))
}

func (s *Server) handleLessonList(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.lesson.List(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]lessonResponse, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, toLessonResponse(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLessonGet(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.lesson.Get(r.Context(), actorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLessonResponse(lesson))
}

func (s *Server) handleLessonUpdate(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}
	lesson, err := s.lesson.Update(r.Context(), actorFrom(r.Context()), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLessonResponse(lesson))
}

func (s *Server) handleLessonDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.lesson.Delete(r.Context(), actorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
