package jobs

import (
	"context"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/logger"
)

// SendOverdueReminders emails every borrower whose return date is before today (UTC).
// A failed send is logged and does not stop the remaining reminders.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		today := jr.now().UTC().Format(domain.ReturnDateLayout)

		records, err := jr.borrows.ListDueBefore(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		sent := 0
		for _, record := range records {
			if err := jr.email.SendOverdueReminder(ctx, record); err != nil {
				logger.Error("Failed to send overdue reminder",
					"borrow_id", record.ID,
					"book_id", record.BookID,
					"email", record.Email,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "overdue", len(records), "sent", sent)
	})
}
