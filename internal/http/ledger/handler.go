package ledger

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/export"
	"github.com/agungalvian/wjg/internal/http/access"
	"github.com/agungalvian/wjg/internal/http/respond"
	"github.com/agungalvian/wjg/internal/importer"
	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/matching"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc     *ledger.Service
	exports *export.Service
	parser  *importer.Parser
	matcher *matching.Service
	now     func() time.Time
}

func NewHandler(
	svc *ledger.Service,
	exports *export.Service,
	parser *importer.Parser,
	matcher *matching.Service,
	now func() time.Time,
) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{svc: svc, exports: exports, parser: parser, matcher: matcher, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/balances", h.balances)
	r.Get("/report", h.report)
	r.Get("/report/export", h.exportReport)
	r.Get("/series", h.series)

	r.With(access.Admin).Get("/mutations", h.listMutations)
	r.With(access.Write).Post("/mutations", h.createMutation)
	r.With(access.Write).Post("/mutations/import", h.importMutations)
}

type balancesResponse struct {
	ledger.Balances
	Total int64 `json:"total"`
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Balances(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, balancesResponse{Balances: b, Total: b.Total()})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	win, err := ledger.ParseWindow(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rep, err := h.svc.PeriodReport(r.Context(), win)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReportResponse(rep))
}

func (h *Handler) exportReport(w http.ResponseWriter, r *http.Request) {
	win, err := ledger.ParseWindow(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exports.Write(r.Context(), win, &buf); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(win)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	win, err := ledger.ParseWindow("", r.URL.Query().Get("year"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	year := win.Year
	if year == 0 {
		year = h.now().Year()
	}

	s, err := h.svc.YearSeries(r.Context(), year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, s)
}

func (h *Handler) listMutations(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListMutations(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toEntryResponseList(entries))
}

type createMutationRequest struct {
	Direction   ledger.Direction `json:"direction"`
	Amount      int64            `json:"amount"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	Category    string           `json:"category"`
	Fund        string           `json:"fund"`
	ProofImage  string           `json:"proof_image"`
}

func (h *Handler) createMutation(w http.ResponseWriter, r *http.Request) {
	var req createMutationRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	fund, ok := ledger.ParseFund(req.Fund)
	if !ok {
		http.Error(w, "unknown fund", http.StatusBadRequest)
		return
	}

	var date time.Time
	if req.Date != "" {
		d, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		date = d
	}

	m, err := h.svc.Record(r.Context(), ledger.CreateParams{
		Direction:   req.Direction,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		Category:    req.Category,
		Fund:        fund,
		ProofImage:  req.ProofImage,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toMutationResponse(m))
}

type importResponse struct {
	Imported  int                `json:"imported"`
	Matched   int                `json:"matched"`
	Mutations []mutationResponse `json:"mutations"`
}

func (h *Handler) importMutations(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	matched, err := h.matcher.Apply(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ms, err := h.svc.ImportBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := importResponse{
		Imported:  len(ms),
		Matched:   matched,
		Mutations: make([]mutationResponse, 0, len(ms)),
	}
	for _, m := range ms {
		resp.Mutations = append(resp.Mutations, toMutationResponse(m))
	}

	respond.JSON(w, http.StatusCreated, resp)
}

type mutationResponse struct {
	ID          uuid.UUID        `json:"id"`
	Direction   ledger.Direction `json:"direction"`
	Amount      int64            `json:"amount"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Category    string           `json:"category,omitempty"`
	Fund        ledger.Fund      `json:"fund,omitempty"`
	ProofImage  string           `json:"proof_image,omitempty"`
	PaymentID   *uuid.UUID       `json:"payment_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toMutationResponse(m *ledger.Mutation) mutationResponse {
	return mutationResponse{
		ID:          m.ID,
		Direction:   m.Direction,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		Category:    m.Category,
		Fund:        m.Fund,
		ProofImage:  m.ProofImage,
		PaymentID:   m.PaymentID,
		CreatedAt:   m.CreatedAt,
	}
}
