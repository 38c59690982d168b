package domain_test

import (
	"testing"
	"time"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReport_CanTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.ReportStatus
		to     domain.ReportStatus
		want   bool
	}{
		{name: "draft to submitted", from: domain.ReportDraft, to: domain.ReportSubmitted, want: true},
		{name: "submitted to locked", from: domain.ReportSubmitted, to: domain.ReportLocked, want: true},
		{name: "draft to locked skips submit", from: domain.ReportDraft, to: domain.ReportLocked, want: false},
		{name: "submitted back to draft", from: domain.ReportSubmitted, to: domain.ReportDraft, want: false},
		{name: "locked is terminal", from: domain.ReportLocked, to: domain.ReportSubmitted, want: false},
		{name: "locked to draft", from: domain.ReportLocked, to: domain.ReportDraft, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.Report{Status: tt.from}
			assert.Equal(t, tt.want, r.CanTransition(tt.to))
		})
	}
}

func TestReport_EnsureModifiable(t *testing.T) {
	draft := domain.Report{Status: domain.ReportDraft}
	assert.NoError(t, draft.EnsureModifiable())

	for _, status := range []domain.ReportStatus{domain.ReportSubmitted, domain.ReportLocked} {
		r := domain.Report{Status: status}
		err := r.EnsureModifiable()
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Contains(t, err.Error(), "report is not modifiable")
	}
}

func TestReport_PeriodContains(t *testing.T) {
	r := domain.Report{Month: 1, Year: 2026}
	assert.True(t, r.PeriodContains(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.PeriodContains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.PeriodContains(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))
}

func TestReport_PeriodString(t *testing.T) {
	r := domain.Report{Month: 3, Year: 2026}
	assert.Equal(t, "2026-03", r.PeriodString())
}

func TestEntry_LineTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice int64
		want      int64
	}{
		{name: "full day", quantity: "1.0", unitPrice: 50000, want: 50000},
		{name: "half day", quantity: "0.5", unitPrice: 50000, want: 25000},
		{name: "quarter day rounds", quantity: "0.25", unitPrice: 33333, want: 8333},
		{name: "rounds half up", quantity: "0.5", unitPrice: 33333, want: 16667},
		{name: "zero price", quantity: "1.0", unitPrice: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.Entry{Quantity: decimal.RequireFromString(tt.quantity), UnitPrice: tt.unitPrice}
			assert.Equal(t, tt.want, e.LineTotal())
		})
	}
}
