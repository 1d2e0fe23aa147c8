package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"connectx/config"
	"connectx/controllers/verificationController"
	"connectx/database"
	adminRoutes "connectx/routers/adminRoutes"
	authRoutes "connectx/routers/authRoutes"
	clubRoutes "connectx/routers/clubRoutes"
	coinRoutes "connectx/routers/coinRoutes"
	collegeRoutes "connectx/routers/collegeRoutes"
	eventRoutes "connectx/routers/eventRoutes"
	legalRoutes "connectx/routers/legalRoutes"
	postRoutes "connectx/routers/postRoutes"
	premiumRoutes "connectx/routers/premiumRoutes"
	rewardRoutes "connectx/routers/rewardRoutes"
	searchRoutes "connectx/routers/searchRoutes"
	userRoutes "connectx/routers/userRoutes"
	verificationRoutes "connectx/routers/verificationRoutes"
	"connectx/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.SeedDefaults()

	verificationController.Init()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded images
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	verificationRoutes.SetupVerificationRoutes(app)
	collegeRoutes.SetupCollegeRoutes(app)
	postRoutes.SetupPostRoutes(app)
	clubRoutes.SetupClubRoutes(app)
	eventRoutes.SetupEventRoutes(app)
	coinRoutes.SetupCoinRoutes(app)
	premiumRoutes.SetupPremiumRoutes(app)
	rewardRoutes.SetupRewardRoutes(app)
	searchRoutes.SetupSearchRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	legalRoutes.SetupLegalRoutes(app)

	utils.InitializePremiumScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
