package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
)

// totalsService recomputes a report's derived totals from its live entries.
// Every entry mutation calls RecalculateInTx in the same transaction, under
// the report row lock, so committed totals always match committed entries.
type totalsService struct {
	entryRepo  portsrepo.EntryRepositoryFacade
	reportRepo portsrepo.ReportRepositoryFacade
}

// NewTotalsService creates a new totals service.
func NewTotalsService(entryRepo portsrepo.EntryRepositoryFacade, reportRepo portsrepo.ReportRepositoryFacade) portssvc.TotalsSvcFacade {
	return &totalsService{entryRepo: entryRepo, reportRepo: reportRepo}
}

var _ portssvc.TotalsSvcFacade = (*totalsService)(nil)

// RecalculateInTx sums quantities and line totals over the report's live
// entries and persists the result. Returns the new totals.
func (s *totalsService) RecalculateInTx(ctx context.Context, tx pgx.Tx, reportID, actorID string, at time.Time) (decimal.Decimal, int64, error) {
	entries, err := s.entryRepo.FindEntriesByReportInTx(ctx, tx, reportID)
	if err != nil {
		return decimal.Zero, 0, err
	}

	totalDays := decimal.Zero
	var totalAmount int64
	for _, e := range entries {
		totalDays = totalDays.Add(e.Quantity)
		totalAmount += e.LineTotal()
	}

	if err := s.reportRepo.UpdateReportTotalsInTx(ctx, tx, reportID, totalDays, totalAmount, actorID, at); err != nil {
		return decimal.Zero, 0, err
	}
	return totalDays, totalAmount, nil
}
