package premiumController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"connectx/database"
	"connectx/middleware"
	"connectx/models"
	"connectx/utils"
)

// Gateway plan IDs per plan type. Billing cycles map to months.
var planCatalog = map[string]struct {
	GatewayPlanID string
	Months        int
	Badge         string
}{
	models.PlanMonthly: {GatewayPlanID: "plan_connectx_monthly", Months: 1, Badge: "gold"},
	models.PlanAnnual:  {GatewayPlanID: "plan_connectx_annual", Months: 12, Badge: "platinum"},
}

// Subscribe opens a recurring subscription at the payment gateway.
func Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		Plan string `json:"plan"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	plan, ok := planCatalog[reqData.Plan]
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Plan must be monthly or annual!", nil)
	}

	db := database.Database.Db

	var active models.Subscription
	if err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		First(&active).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have an active subscription!", nil)
	}

	gwSub, err := utils.CreateSubscription(plan.GatewayPlanID, plan.Months)
	if err != nil {
		log.Printf("Error creating gateway subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable!", nil)
	}

	sub := models.Subscription{
		UserID:           userID,
		GatewaySubID:     gwSub.ID,
		GatewayPlanID:    plan.GatewayPlanID,
		PlanType:         reqData.Plan,
		Status:           models.SubscriptionPending,
		CurrentPeriodEnd: time.Now().AddDate(0, plan.Months, 0),
	}
	if err := db.Create(&sub).Error; err != nil {
		log.Printf("Error saving subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscription created. Complete the checkout to activate.", fiber.Map{
		"subscription": sub,
		"gateway":      gwSub,
	})
}

// Webhook handles gateway subscription lifecycle events.
func Webhook(c *fiber.Ctx) error {
	reqData := new(struct {
		Event        string `json:"event"`
		GatewaySubID string `json:"gatewaySubId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var sub models.Subscription
	if err := db.Where("gateway_sub_id = ?", reqData.GatewaySubID).First(&sub).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
	}

	plan, ok := planCatalog[sub.PlanType]
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Unknown plan on record!", nil)
	}

	switch reqData.Event {
	case "subscription.activated", "subscription.charged":
		periodEnd := time.Now().AddDate(0, plan.Months, 0)
		if err := db.Model(&sub).Updates(map[string]interface{}{
			"status":             models.SubscriptionActive,
			"current_period_end": periodEnd,
		}).Error; err != nil {
			log.Printf("Error activating subscription: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update subscription!", nil)
		}
		if err := db.Model(&models.User{}).Where("id = ?", sub.UserID).
			Updates(map[string]interface{}{
				"is_premium":     true,
				"premium_plan":   sub.PlanType,
				"premium_badge":  plan.Badge,
				"premium_expiry": periodEnd,
			}).Error; err != nil {
			log.Printf("Error flagging premium user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
	case "subscription.completed":
		if err := db.Model(&sub).Update("status", models.SubscriptionExpired).Error; err != nil {
			log.Printf("Error expiring subscription: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update subscription!", nil)
		}
		if err := db.Model(&models.User{}).Where("id = ?", sub.UserID).
			Updates(map[string]interface{}{
				"is_premium":    false,
				"premium_plan":  "",
				"premium_badge": "",
			}).Error; err != nil {
			log.Printf("Error clearing premium user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
	case "subscription.cancelled", "subscription.halted":
		now := time.Now()
		if err := db.Model(&sub).Updates(map[string]interface{}{
			"status":       models.SubscriptionCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			log.Printf("Error cancelling subscription: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update subscription!", nil)
		}
		if err := db.Model(&models.User{}).Where("id = ?", sub.UserID).
			Updates(map[string]interface{}{
				"is_premium":    false,
				"premium_plan":  "",
				"premium_badge": "",
			}).Error; err != nil {
			log.Printf("Error clearing premium user: %v", err)
		}
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed.", nil)
}

// Status reports the caller's premium state.
func Status(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Lazy expiry: clear the premium flags when the paid period has
	// already lapsed, without waiting for the nightly sweep.
	if user.IsPremium && user.PremiumExpiry != nil && user.PremiumExpiry.Before(time.Now()) {
		if err := db.Model(&user).Updates(map[string]interface{}{
			"is_premium":    false,
			"premium_plan":  "",
			"premium_badge": "",
		}).Error; err != nil {
			log.Printf("Error lazily expiring premium: %v", err)
		}
		user.IsPremium = false
		user.PremiumPlan = ""
		user.PremiumBadge = ""
	}

	daysRemaining := 0
	if user.IsPremium && user.PremiumExpiry != nil {
		daysRemaining = int(time.Until(*user.PremiumExpiry).Hours() / 24)
	}

	var sub models.Subscription
	var latest *models.Subscription
	if err := db.Where("user_id = ?", userID).Order("id DESC").First(&sub).Error; err == nil {
		latest = &sub
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Premium status fetched.", fiber.Map{
		"isPremium":     user.IsPremium,
		"plan":          user.PremiumPlan,
		"badge":         user.PremiumBadge,
		"premiumExpiry": user.PremiumExpiry,
		"daysRemaining": daysRemaining,
		"subscription":  latest,
	})
}

// Cancel stops the caller's active subscription at period end.
func Cancel(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var sub models.Subscription
	if err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		First(&sub).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active subscription!", nil)
	}

	now := time.Now()
	if err := db.Model(&sub).Updates(map[string]interface{}{
		"status":       models.SubscriptionCancelled,
		"cancelled_at": now,
	}).Error; err != nil {
		log.Printf("Error cancelling subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel subscription!", nil)
	}

	// Premium stays until the period the user paid for runs out; the
	// scheduler clears the flag after that.
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription cancelled.", sub)
}
