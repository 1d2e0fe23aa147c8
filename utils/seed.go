package utils

import (
	"log"
	"time"

	"connectx/database"
	"connectx/models"
)

// SeedDefaults inserts the coin bundle catalogue and starter rewards when
// the tables are empty.
func SeedDefaults() {
	db := database.Database.Db

	var bundleCount int64
	db.Model(&models.CoinBundle{}).Count(&bundleCount)
	if bundleCount == 0 {
		bundles := []models.CoinBundle{
			{AmountINR: 10, Coins: 100},
			{AmountINR: 20, Coins: 250},
			{AmountINR: 50, Coins: 700},
			{AmountINR: 100, Coins: 1500},
		}
		if err := db.Create(&bundles).Error; err != nil {
			log.Printf("Seeding coin bundles failed: %v", err)
		} else {
			log.Println("Seeded coin bundles.")
		}
	}

	var rewardCount int64
	db.Model(&models.Reward{}).Count(&rewardCount)
	if rewardCount == 0 {
		rewards := []models.Reward{
			{Name: "Campus Cafe Voucher", Description: "Free coffee at the campus cafe", PointsRequired: 200},
			{Name: "Movie Ticket", Description: "One standard movie ticket", PointsRequired: 500},
			{Name: "Merch Hoodie", Description: "ConnectX hoodie", PointsRequired: 1500},
		}
		if err := db.Create(&rewards).Error; err != nil {
			log.Printf("Seeding rewards failed: %v", err)
		} else {
			log.Println("Seeded rewards.")
		}
	}

	var couponCount int64
	db.Model(&models.Coupon{}).Count(&couponCount)
	if couponCount == 0 {
		coupons := []models.Coupon{
			{Vendor: "Campus Cafe", Value: "FREE-COFFEE", Expiry: time.Now().AddDate(0, 3, 0)},
			{Vendor: "BookStore", Value: "10PCT-OFF", Expiry: time.Now().AddDate(0, 6, 0)},
		}
		if err := db.Create(&coupons).Error; err != nil {
			log.Printf("Seeding coupons failed: %v", err)
		}
	}
}
