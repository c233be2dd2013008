package web

import (
	"encoding/json"
	"net/http"
	"time"

	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type courseRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Preview       *string `json:"preview"`
	MaterialsLink *string `json:"materials_link"`
	Price         *int64  `json:"price"`
}

func (r courseRequest) input() usecase.CourseInput {
	return usecase.CourseInput{
		Name:          r.Name,
		Description:   r.Description,
		Preview:       r.Preview,
		MaterialsLink: r.MaterialsLink,
		Price:         r.Price,
	}
}

type courseResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Preview       string           `json:"preview,omitempty"`
	MaterialsLink string           `json:"materials_link,omitempty"`
	Price         *int64           `json:"price,omitempty"`
	OwnerID       string           `json:"owner"`
	CreatedAt     time.Time        `json:"created_at"`
	LessonsCount  int              `json:"lessons_count"`
	Lessons       []lessonResponse `json:"lessons,omitempty"`
	IsSubscribed  bool             `json:"is_subscribed"`
}

func toCourseResponse(c *model.Course) courseResponse {
	return courseResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Preview:       c.Preview,
		MaterialsLink: c.MaterialsLink,
		Price:         c.Price,
		OwnerID:       c.OwnerID,
		CreatedAt:     c.CreatedAt,
	}
}

func toCourseViewResponse(v *usecase.CourseView) courseResponse {
	resp := toCourseResponse(v.Course)
	resp.LessonsCount = v.LessonsCount
	resp.IsSubscribed = v.IsSubscribed
	for _, l := range v.Lessons {
		resp.Lessons = append(resp.Lessons, toLessonResponse(l))
	}
	return resp
}

func (s *Server) handleCourseCreate(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}
	course, err := s.course.Create(r.Context(), actorFrom(r.Context()), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCourseResponse(course))
}

func (s *Server) handleCourseList(w http.ResponseWriter, r *http.Request) {
	views, err := s.course.List(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]courseResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toCourseViewResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCourseGet(w http.ResponseWriter, r *http.Request) {
	view, err := s.course.Get(r.Context(), actorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseViewResponse(view))
}

func (s *Server) handleCourseUpdate(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}
	course, err := s.course.Update(r.Context(), actorFrom(r.Context()), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

func (s *Server) handleCourseDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.course.Delete(r.Context(), actorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
