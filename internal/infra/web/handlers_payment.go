package web

import (
	"encoding/json"
	"net/http"
	"time"

	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"

	"github.com/go-chi/chi/v5"
)

type paymentResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user"`
	PaidCourseID  *string   `json:"paid_course,omitempty"`
	PaidLessonID  *string   `json:"paid_lesson,omitempty"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"payment_method"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentLink   string    `json:"payment_link,omitempty"`
	IsPaid        bool      `json:"is_paid"`
	GatewayStatus string    `json:"gateway_status,omitempty"`
}

func toPaymentResponse(p *model.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		PaidCourseID:  p.PaidCourseID,
		PaidLessonID:  p.PaidLessonID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		PaymentDate:   p.PaymentDate,
		PaymentLink:   p.PaymentLink,
		IsPaid:        p.Paid,
		GatewayStatus: p.GatewayStatus,
	}
}

type checkoutResponse struct {
	PaymentID   string `json:"payment_id"`
	PaymentLink string `json:"payment_link"`
}

// handleCheckout starts a hosted-checkout flow for a course.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "course_id")
	payment, link, err := s.pay.StartCheckout(r.Context(), actorFrom(r.Context()), courseID, s.cfg.SuccessURL, s.cfg.CancelURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, checkoutResponse{PaymentID: payment.ID, PaymentLink: link})
}

// handlePaymentSuccess is the gateway's success redirect. It responds 200
// whether or not a matching payment exists; the gateway is the source of
// truth and replays are expected.
func (s *Server) handlePaymentSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if err := s.pay.ConfirmBySession(r.Context(), sessionID); err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("payment confirmation failed")
		writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "payment successful"})
}

// handlePaymentCancel is purely informational; nothing changes state.
func (s *Server) handlePaymentCancel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "payment cancelled"})
}

type manualPaymentRequest struct {
	PaidCourseID *string `json:"paid_course"`
	PaidLessonID *string `json:"paid_lesson"`
	Amount       int64   `json:"amount"`
	Method       string  `json:"payment_method"`
	// Gateway fields are not accepted on manual create; their presence is
	// rejected so cash/transfer rows never carry stripe identifiers.
	SessionID string `json:"stripe_session_id,omitempty"`
}

func (s *Server) handlePaymentCreate(w http.ResponseWriter, r *http.Request) {
	var req manualPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}
	if req.SessionID != "" {
		badRequestField(w, "stripe_session_id", "gateway fields are set by checkout only")
		return
	}
	payment, err := s.pay.CreateManual(r.Context(), actorFrom(r.Context()), req.PaidCourseID, req.PaidLessonID, req.Amount, model.PaymentMethod(req.Method))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

func (s *Server) handlePaymentList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.PaymentFilter{
		CourseID: q.Get("course"),
		LessonID: q.Get("lesson"),
		Method:   model.PaymentMethod(q.Get("payment_method")),
		DateDesc: q.Get("ordering") == "-payment_date",
	}
	if filter.Method != "" && !filter.Method.Valid() {
		badRequestField(w, "payment_method", "unknown payment method")
		return
	}
	payments, err := s.pay.List(r.Context(), actorFrom(r.Context()), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}
