package web

import (
	"encoding/json"
	"net/http"
)

type subscriptionRequest struct {
	CourseID string `json:"course_id"`
}

type subscriptionResponse struct {
	Message string `json:"message"`
}

// handleSubscriptionToggle flips the caller's subscription: 201 when added,
// 200 when removed.
func (s *Server) handleSubscriptionToggle(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}
	if req.CourseID == "" {
		badRequestField(w, "course_id", "course_id is required")
		return
	}

	created, err := s.subs.Toggle(r.Context(), actorFrom(r.Context()), req.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}
	if created {
		writeJSON(w, http.StatusCreated, subscriptionResponse{Message: "subscription added"})
		return
	}
	writeJSON(w, http.StatusOK, subscriptionResponse{Message: "subscription removed"})
}
