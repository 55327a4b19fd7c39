package jobs

import (
	"context"
	"time"

	"bridgeseed-backend/internal/logger"
)

// SendPendingVerificationDigest mails the admin team a morning summary
// of how much is waiting in the review queues.
func (jr *JobRunner) SendPendingVerificationDigest() {
	jr.runWithRecovery("SendPendingVerificationDigest", func() {
		ctx := context.Background()

		pendingTxs, err := jr.store.Transactions().ListPending(ctx)
		if err != nil {
			logger.Error("Failed to list pending transactions", "error", err)
			return
		}
		pendingBadges, err := jr.store.BadgeRequests().ListPending(ctx)
		if err != nil {
			logger.Error("Failed to list pending badge requests", "error", err)
			return
		}

		if len(pendingTxs) == 0 && len(pendingBadges) == 0 {
			logger.Info("Review queues are empty, skipping digest")
			return
		}

		adminEmail := jr.config.Email.AdminEmail
		if adminEmail == "" {
			logger.Warn("No admin email configured, skipping digest")
			return
		}

		if err := jr.emailSvc.SendPendingDigest(ctx, adminEmail, len(pendingTxs), len(pendingBadges)); err != nil {
			logger.Error("Failed to send pending digest", "error", err)
			return
		}
		logger.Info("Sent pending verification digest",
			"pending_transactions", len(pendingTxs),
			"pending_badges", len(pendingBadges))
	})
}

// SendStalePurchaseReminders escalates purchase claims that have kept
// an item off the market for too long.
func (jr *JobRunner) SendStalePurchaseReminders() {
	jr.runWithRecovery("SendStalePurchaseReminders", func() {
		ctx := context.Background()

		ageDays := jr.config.Scheduler.StalePurchaseAgeDays
		cutoff := time.Now().UTC().AddDate(0, 0, -ageDays)

		items, err := jr.store.Items().ListPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale purchase claims", "error", err)
			return
		}
		if len(items) == 0 {
			return
		}

		adminEmail := jr.config.Email.AdminEmail
		if adminEmail == "" {
			logger.Warn("No admin email configured, skipping stale purchase reminders")
			return
		}

		count := 0
		for i := range items {
			if err := jr.emailSvc.SendStalePurchaseNotice(ctx, adminEmail, &items[i]); err != nil {
				logger.Error("Failed to send stale purchase notice", "error", err, "item_id", items[i].ID)
				continue
			}
			count++
		}
		logger.Info("Sent stale purchase reminders", "count", count, "cutoff", cutoff)
	})
}
