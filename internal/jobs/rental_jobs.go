package jobs

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/logger"
)

const overdueReportTimeout = 30 * time.Second

// ReportOverdueRentals logs every picked-up rental past its return date.
// Statuses are left untouched; overdue is derived at read time.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		ctx, cancel := context.WithTimeout(context.Background(), overdueReportTimeout)
		defer cancel()

		if _, err := jr.reportOverdueRentals(ctx); err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
		}
	})
}

func (jr *JobRunner) reportOverdueRentals(ctx context.Context) (int, error) {
	overdue, err := jr.services.Rental.ListOverdue(ctx)
	if err != nil {
		return 0, err
	}

	logger.Info("Overdue rentals found", "count", len(overdue))

	now := time.Now().UTC()
	for _, r := range overdue {
		logger.Warn("Rental is overdue",
			"rental_id", r.ID,
			"reservation_id", r.ReservationID,
			"user_id", r.UserID,
			"car_plate", r.CarPlate,
			"return_date", r.ReturnDate.Format(time.RFC3339),
			"hours_late", int(now.Sub(r.ReturnDate).Hours()))
	}
	return len(overdue), nil
}
