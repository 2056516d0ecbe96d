package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/ledger"
)

type entryResponse struct {
	ID           uuid.UUID        `json:"id"`
	Direction    ledger.Direction `json:"direction"`
	Amount       int64            `json:"amount"`
	Description  string           `json:"description"`
	Date         time.Time        `json:"date"`
	Category     string           `json:"category,omitempty"`
	Fund         ledger.Fund      `json:"fund,omitempty"`
	FundLabel    string           `json:"fund_label"`
	PaymentID    *uuid.UUID       `json:"payment_id,omitempty"`
	ResidentName string           `json:"resident_name,omitempty"`
	ProofImage   string           `json:"proof_image,omitempty"`
	Aggregated   bool             `json:"is_aggregated"`
}

type reportResponse struct {
	Window  ledger.Window   `json:"window"`
	Title   string          `json:"title"`
	Summary ledger.Summary  `json:"summary"`
	Entries []entryResponse `json:"entries"`
	Skipped int             `json:"skipped,omitempty"`
}

func toEntryResponse(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		Direction:    e.Direction,
		Amount:       e.Amount,
		Description:  e.Description,
		Date:         e.Date,
		Category:     e.Category,
		Fund:         e.Fund,
		FundLabel:    e.Fund.Label(),
		PaymentID:    e.PaymentID,
		ResidentName: e.ResidentName,
		ProofImage:   e.ProofImage,
		Aggregated:   e.Aggregated(),
	}
}

func toEntryResponseList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}

	return resp
}

func toReportResponse(r *ledger.PeriodReport) reportResponse {
	return reportResponse{
		Window:  r.Window,
		Title:   r.Window.Title(),
		Summary: r.Summary,
		Entries: toEntryResponseList(r.Entries),
		Skipped: r.Skipped,
	}
}
