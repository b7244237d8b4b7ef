package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

// OwnerSummary is the aggregated dashboard row the reports endpoint serves.
type OwnerSummary struct {
	FacilityCount int `json:"facility_count"`
	CustomerCount int `json:"customer_count"`

	UnitCountsByStatus map[models.UnitStatusType]int `json:"unit_counts_by_status"`
	TotalUnits         int                           `json:"total_units"`

	// Occupied units over total units, 0 when the owner has no units.
	OccupancyRate float64 `json:"occupancy_rate"`

	ActiveRentals int `json:"active_rentals"`

	// Sum of amount_due - amount_paid over unpaid, uncancelled invoices.
	OutstandingReceivables float64 `json:"outstanding_receivables"`
	OverdueInvoices        int     `json:"overdue_invoices"`

	LedgerIncome   float64 `json:"ledger_income"`
	LedgerExpenses float64 `json:"ledger_expenses"`
}

type ReportRepository interface {
	OwnerSummary(ctx context.Context, ownerID uuid.UUID) (*OwnerSummary, error)
}

type reportRepo struct {
	db DB
}

func NewReportRepository(db DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) OwnerSummary(ctx context.Context, ownerID uuid.UUID) (*OwnerSummary, error) {
	s := &OwnerSummary{UnitCountsByStatus: make(map[models.UnitStatusType]int)}

	err := r.db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM facilities WHERE owner_id=$1),
            (SELECT COUNT(*) FROM customers WHERE owner_id=$1),
            (SELECT COUNT(*) FROM rentals r
                JOIN units u ON u.id = r.unit_id
                JOIN facilities f ON f.id = u.facility_id
                WHERE f.owner_id=$1 AND r.status=$2),
            (SELECT COALESCE(SUM(amount_due - amount_paid), 0) FROM invoices
                WHERE owner_id=$1 AND status NOT IN ($3, $4)),
            (SELECT COUNT(*) FROM invoices WHERE owner_id=$1 AND status=$5),
            (SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE owner_id=$1 AND kind=$6),
            (SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE owner_id=$1 AND kind=$7)
    `,
		ownerID,
		models.RentalStatusActive,
		models.InvoiceStatusPaid, models.InvoiceStatusCancelled,
		models.InvoiceStatusOverdue,
		models.LedgerIncome, models.LedgerExpense,
	).Scan(
		&s.FacilityCount,
		&s.CustomerCount,
		&s.ActiveRentals,
		&s.OutstandingReceivables,
		&s.OverdueInvoices,
		&s.LedgerIncome,
		&s.LedgerExpenses,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
        SELECT u.status, COUNT(*)
        FROM units u
        JOIN facilities f ON f.id = u.facility_id
        WHERE f.owner_id=$1
        GROUP BY u.status
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status models.UnitStatusType
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		s.UnitCountsByStatus[status] = n
		s.TotalUnits += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.TotalUnits > 0 {
		s.OccupancyRate = float64(s.UnitCountsByStatus[models.UnitStatusOccupied]) / float64(s.TotalUnits)
	}
	return s, nil
}
