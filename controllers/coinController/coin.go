package coinController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"connectx/database"
	"connectx/middleware"
	"connectx/models"
	"connectx/utils"
)

// Bundles lists the purchasable coin packs.
func Bundles(c *fiber.Ctx) error {
	var bundles []models.CoinBundle
	if err := database.Database.Db.Order("amount_inr ASC").Find(&bundles).Error; err != nil {
		log.Printf("Error fetching coin bundles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bundles!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coin bundles fetched.", bundles)
}

// CreateOrder opens a payment gateway order for a bundle.
func CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		BundleID uint `json:"bundleId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var bundle models.CoinBundle
	if err := db.First(&bundle, "id = ?", reqData.BundleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bundle not found!", nil)
	}

	order, err := utils.CreateOrder(int64(bundle.AmountINR) * 100)
	if err != nil {
		log.Printf("Error creating gateway order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable!", nil)
	}

	purchase := models.CoinPurchase{
		UserID:    userID,
		BundleID:  bundle.ID,
		Coins:     bundle.Coins,
		AmountINR: bundle.AmountINR,
		Status:    models.PurchaseStatusPending,
		OrderID:   order.ID,
	}
	if err := db.Create(&purchase).Error; err != nil {
		log.Printf("Error saving purchase: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order created.", fiber.Map{
		"purchase": purchase,
		"order":    order,
	})
}

// VerifyPayment confirms the gateway signature and credits the coins.
func VerifyPayment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var purchase models.CoinPurchase
	err := db.Where("order_id = ? AND user_id = ?", reqData.OrderID, userID).First(&purchase).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Purchase not found!", nil)
	}
	if purchase.Status != models.PurchaseStatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This purchase was already settled!", nil)
	}

	if !utils.VerifyPaymentSignature(reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		db.Model(&purchase).Update("status", models.PurchaseStatusFailed)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment signature mismatch!", nil)
	}

	tx := db.Begin()
	if err := tx.Error; err != nil {
		log.Printf("Error starting transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm payment!", nil)
	}

	res := tx.Model(&models.CoinPurchase{}).
		Where("id = ? AND status = ?", purchase.ID, models.PurchaseStatusPending).
		Updates(map[string]interface{}{
			"status":     models.PurchaseStatusSuccess,
			"payment_id": reqData.PaymentID,
		})
	if res.Error != nil || res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This purchase was already settled!", nil)
	}

	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("coins", gorm.Expr("coins + ?", purchase.Coins)).Error; err != nil {
		tx.Rollback()
		log.Printf("Error crediting coins: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to credit coins!", nil)
	}

	ledger := models.CoinTransaction{
		ToUser:          userID,
		Coins:           purchase.Coins,
		Type:            models.CoinTxPurchase,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&ledger).Error; err != nil {
		tx.Rollback()
		log.Printf("Error writing coin ledger: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to credit coins!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to credit coins!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coins credited.", fiber.Map{
		"coins": purchase.Coins,
	})
}

// Gift moves coins from the caller to another user.
func Gift(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		ToUser uint `json:"toUser"`
		Coins  uint `json:"coins"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Coins == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coin amount must be positive!", nil)
	}
	if reqData.ToUser == userID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot gift coins to yourself!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.User{}, "id = ? AND is_deleted = false", reqData.ToUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient not found!", nil)
	}

	tx := db.Begin()
	if err := tx.Error; err != nil {
		log.Printf("Error starting transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to gift coins!", nil)
	}

	// Debit only when the balance covers the gift
	res := tx.Model(&models.User{}).
		Where("id = ? AND coins >= ?", userID, reqData.Coins).
		Update("coins", gorm.Expr("coins - ?", reqData.Coins))
	if res.Error != nil {
		tx.Rollback()
		log.Printf("Error debiting coins: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to gift coins!", nil)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient coin balance!", nil)
	}

	if err := tx.Model(&models.User{}).Where("id = ?", reqData.ToUser).
		Update("coins", gorm.Expr("coins + ?", reqData.Coins)).Error; err != nil {
		tx.Rollback()
		log.Printf("Error crediting coins: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to gift coins!", nil)
	}

	ledger := models.CoinTransaction{
		FromUser:        &userID,
		ToUser:          reqData.ToUser,
		Coins:           reqData.Coins,
		Type:            models.CoinTxGift,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&ledger).Error; err != nil {
		tx.Rollback()
		log.Printf("Error writing coin ledger: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to gift coins!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing gift: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to gift coins!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coins gifted.", ledger)
}

// History returns the caller's coin ledger, newest first.
func History(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var transactions []models.CoinTransaction
	if err := database.Database.Db.
		Where("to_user = ? OR from_user = ?", userID, userID).
		Order("id DESC").Limit(50).Find(&transactions).Error; err != nil {
		log.Printf("Error fetching coin history: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coin history fetched.", transactions)
}
