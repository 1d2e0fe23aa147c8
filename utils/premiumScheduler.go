package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"connectx/database"
	"connectx/models"
)

// InitializePremiumScheduler sets up the premium expiry scheduler
func InitializePremiumScheduler() {
	log.Println("[PREMIUM-SCHEDULER] Initializing premium scheduler...")

	c := cron.New()

	// Run daily at 1 AM to expire lapsed subscriptions
	c.AddFunc("0 1 * * *", func() {
		log.Println("[PREMIUM-SCHEDULER] Running daily premium expiry check...")
		ExpirePremiumSubscriptions()
	})

	c.Start()
	log.Println("[PREMIUM-SCHEDULER] Premium scheduler started - runs daily at 1 AM")
}

// ExpirePremiumSubscriptions marks lapsed subscriptions expired and clears
// the premium flags on their users.
func ExpirePremiumSubscriptions() {
	db := database.Database.Db
	now := time.Now()

	var lapsed []models.Subscription
	if err := db.
		Where("status = ? AND current_period_end < ?", models.SubscriptionActive, now).
		Find(&lapsed).Error; err != nil {
		log.Printf("[PREMIUM-SCHEDULER] Error fetching lapsed subscriptions: %v", err)
		return
	}

	log.Printf("[PREMIUM-SCHEDULER] Found %d lapsed subscriptions", len(lapsed))

	for _, sub := range lapsed {
		if err := db.Model(&models.Subscription{}).
			Where("id = ?", sub.ID).
			Update("status", models.SubscriptionExpired).Error; err != nil {
			log.Printf("[PREMIUM-SCHEDULER] Error expiring subscription %d: %v", sub.ID, err)
			continue
		}

		if err := db.Model(&models.User{}).
			Where("id = ?", sub.UserID).
			Updates(map[string]interface{}{
				"is_premium":    false,
				"premium_plan":  "",
				"premium_badge": "",
			}).Error; err != nil {
			log.Printf("[PREMIUM-SCHEDULER] Error clearing premium for user %d: %v", sub.UserID, err)
		}
	}
}
