package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

type ReportRepo struct {
	s *Store
}

func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

// Summary mismas agregaciones que la consulta SQL.
func (r *ReportRepo) Summary(_ context.Context, f repository.DocumentFilter) (*repository.SummaryResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := &repository.SummaryResult{Total: decimal.Zero}
	byMonth := map[string]decimal.Decimal{}
	for _, d := range r.s.documents {
		if !matches(d, f) {
			continue
		}
		switch d.Type {
		case entity.TypeInvoice:
			res.Invoices++
		case entity.TypeReceipt:
			res.Receipts++
		case entity.TypeCreditNote:
			res.CreditNotes++
		}
		res.Records++
		res.Total = res.Total.Add(d.Total)
		byMonth[d.Month] = byMonth[d.Month].Add(d.Total)
	}
	for m, t := range byMonth {
		res.ByMonth = append(res.ByMonth, repository.MonthTotal{Month: m, Total: t})
	}
	sort.Slice(res.ByMonth, func(i, j int) bool { return res.ByMonth[i].Month < res.ByMonth[j].Month })
	return res, nil
}
