package rewardController

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"connectx/database"
	"connectx/middleware"
	"connectx/models"
)

// List returns the reward catalogue.
func List(c *fiber.Ctx) error {
	var rewards []models.Reward
	if err := database.Database.Db.Where("is_deleted = false").
		Order("points_required ASC").Find(&rewards).Error; err != nil {
		log.Printf("Error fetching rewards: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rewards!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rewards fetched.", rewards)
}

// Redeem swaps points for a reward and hands the caller an unused coupon.
func Redeem(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	rewardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reward id!", nil)
	}

	db := database.Database.Db

	var reward models.Reward
	if err := db.First(&reward, "id = ? AND is_deleted = false", rewardID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reward not found!", nil)
	}

	tx := db.Begin()
	if err := tx.Error; err != nil {
		log.Printf("Error starting transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to redeem reward!", nil)
	}

	// Debit only when the balance covers the reward
	res := tx.Model(&models.User{}).
		Where("id = ? AND points >= ?", userID, reward.PointsRequired).
		Update("points", gorm.Expr("points - ?", reward.PointsRequired))
	if res.Error != nil {
		tx.Rollback()
		log.Printf("Error debiting points: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to redeem reward!", nil)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient points!", nil)
	}

	// Claim the oldest unused coupon that is still valid
	now := time.Now()
	var coupon models.Coupon
	err = tx.Where("used_by IS NULL AND expiry > ?", now).Order("id ASC").First(&coupon).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "No coupons available right now!", nil)
		}
		log.Printf("Error claiming coupon: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to redeem reward!", nil)
	}

	claim := tx.Model(&models.Coupon{}).
		Where("id = ? AND used_by IS NULL", coupon.ID).
		Updates(map[string]interface{}{"used_by": userID, "used_at": now})
	if claim.Error != nil || claim.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Coupon was claimed by someone else. Try again!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing redemption: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to redeem reward!", nil)
	}

	coupon.UsedBy = &userID
	coupon.UsedAt = &now
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reward redeemed.", fiber.Map{
		"reward": reward,
		"coupon": coupon,
	})
}

// MyCoupons lists the coupons the caller has claimed.
func MyCoupons(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var coupons []models.Coupon
	if err := database.Database.Db.Where("used_by = ?", userID).
		Order("used_at DESC").Find(&coupons).Error; err != nil {
		log.Printf("Error fetching coupons: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch coupons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupons fetched.", coupons)
}
