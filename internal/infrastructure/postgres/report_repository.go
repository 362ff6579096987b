package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de sólo lectura sobre el historial.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Summary cuenta comprobantes por tipo y suma totales, global y por mes.
// Usa COALESCE para devolver cero si no hay comprobantes.
func (r *ReportRepo) Summary(ctx context.Context, f repository.DocumentFilter) (*repository.SummaryResult, error) {
	where, args := documentFilterSQL(f)

	res := &repository.SummaryResult{Total: decimal.Zero}
	err := r.q.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE type = $`+fmt.Sprint(len(args)+1)+`),
			COUNT(*) FILTER (WHERE type = $`+fmt.Sprint(len(args)+2)+`),
			COUNT(*) FILTER (WHERE type = $`+fmt.Sprint(len(args)+3)+`),
			COUNT(*),
			COALESCE(SUM(total), 0)
		FROM documents`+where,
		append(args, string(entity.TypeInvoice), string(entity.TypeReceipt), string(entity.TypeCreditNote))...,
	).Scan(&res.Invoices, &res.Receipts, &res.CreditNotes, &res.Records, &res.Total)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT month, COALESCE(SUM(total), 0)
		FROM documents`+where+`
		GROUP BY month
		ORDER BY month`, args...)
	if err != nil {
		return nil, fmt.Errorf("summary by month: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mt repository.MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Total); err != nil {
			return nil, fmt.Errorf("scan month total: %w", err)
		}
		res.ByMonth = append(res.ByMonth, mt)
	}
	return res, rows.Err()
}

// documentFilterSQL traduce el filtro a un WHERE con placeholders $1..$n.
func documentFilterSQL(f repository.DocumentFilter) (string, []any) {
	var where []string
	var args []any
	if f.Client != "" {
		args = append(args, "%"+f.Client+"%")
		where = append(where, fmt.Sprintf("client_name ILIKE $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Month != "" {
		args = append(args, f.Month+"%")
		where = append(where, fmt.Sprintf("month LIKE $%d", len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}
