package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
	"github.com/agungalvian/wjg/internal/payment"
)

type Handler struct {
	svc *payment.Service
	now func() time.Time
}

func NewHandler(svc *payment.Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.submit)
	r.Get("/mine", h.mine)
	r.Get("/status", h.status)

	r.With(access.Admin).Get("/", h.list)
	r.With(access.Admin).Get("/matrix", h.matrix)
	r.With(access.Admin).Get("/{id}", h.get)
	r.With(access.Write).Post("/{id}/approve", h.approve)
	r.With(access.Write).Post("/{id}/reject", h.reject)
}

type paymentResponse struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	ResidentName string            `json:"resident_name,omitempty"`
	HouseNumber  string            `json:"house_number,omitempty"`
	Amount       int64             `json:"amount"`
	Months       []string          `json:"months"`
	Breakdown    payment.Breakdown `json:"breakdown"`
	Status       payment.Status    `json:"status"`
	ProofImage   string            `json:"proof_image"`
	PaymentDate  string            `json:"payment_date"`
	Note         string            `json:"note,omitempty"`
	SubmittedAt  time.Time         `json:"submitted_at"`
	ReviewedAt   *time.Time        `json:"reviewed_at,omitempty"`
}

func toResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		ResidentName: p.ResidentName,
		HouseNumber:  p.HouseNumber,
		Amount:       p.Amount,
		Months:       p.Months,
		Breakdown:    p.Breakdown,
		Status:       p.Status,
		ProofImage:   p.ProofImage,
		PaymentDate:  p.PaymentDate.Format(time.DateOnly),
		Note:         p.Note,
		SubmittedAt:  p.SubmittedAt,
		ReviewedAt:   p.ReviewedAt,
	}
}

func toResponseList(ps []*payment.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(ps))
	for i, p := range ps {
		resp[i] = toResponse(p)
	}

	return resp
}

type submitRequest struct {
	Months      []string `json:"months"`
	ProofImage  string   `json:"proof_image"`
	PaymentDate string   `json:"payment_date"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	id, _ := access.IdentityFrom(r.Context())

	var req submitRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	var date time.Time
	if req.PaymentDate != "" {
		d, err := time.Parse(time.DateOnly, req.PaymentDate)
		if err != nil {
			http.Error(w, "payment_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		date = d
	}

	p, err := h.svc.Submit(r.Context(), payment.SubmitParams{
		UserID:      id.UserID,
		Months:      req.Months,
		ProofImage:  req.ProofImage,
		PaymentDate: date,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) mine(w http.ResponseWriter, r *http.Request) {
	id, _ := access.IdentityFrom(r.Context())

	ps, err := h.svc.ListForUser(r.Context(), id.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ps))
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	id, _ := access.IdentityFrom(r.Context())

	year, ok := h.year(w, r)
	if !ok {
		return
	}

	st, err := h.svc.ResidentStatus(r.Context(), id.UserID, year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, st)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	status, err := payment.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ps, err := h.svc.List(r.Context(), status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ps))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) matrix(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Matrix(r.Context(), year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, m)
}

type reviewRequest struct {
	Note string `json:"note"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.svc.Approve)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.svc.Reject)
}

type reviewFunc func(ctx context.Context, id uuid.UUID, note string) (*payment.Payment, error)

func (h *Handler) review(w http.ResponseWriter, r *http.Request, fn reviewFunc) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	// The note is optional, so is the body.
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	p, err := fn(r.Context(), id, req.Note)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) year(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return h.now().Year(), true
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return 0, false
	}

	return year, true
}
