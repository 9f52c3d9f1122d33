package api

import (
	"ahorrapp/docs"
	"ahorrapp/internal/api/handlers"
	"ahorrapp/pkg/auth"
	"ahorrapp/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	txHandler *handlers.TransactionHandler,
	budgetHandler *handlers.BudgetHandler,
	analysisHandler *handlers.AnalysisHandler,
	mfaHandler *handlers.MFAHandler,
	receiptHandler *handlers.ReceiptHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger docs are registered by the docs package init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/mfa/verify", authHandler.VerifyMFALogin)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	transactions := protected.Group("/transactions")
	transactions.Get("", txHandler.List)
	transactions.Post("", txHandler.Save)
	transactions.Put("/:id", txHandler.Save)
	transactions.Delete("/:id", txHandler.Delete)

	budgets := protected.Group("/budgets")
	budgets.Get("", budgetHandler.List)
	budgets.Post("", budgetHandler.Create)
	budgets.Put("/:id", budgetHandler.Update)
	budgets.Delete("/:id", budgetHandler.Delete)

	analysis := protected.Group("/analysis")
	analysis.Get("/summary", analysisHandler.Summary)
	analysis.Get("/categories", analysisHandler.Categories)
	analysis.Get("/monthly", analysisHandler.Monthly)

	mfa := protected.Group("/mfa")
	mfa.Get("", mfaHandler.Status)
	mfa.Post("/enroll", mfaHandler.Enroll)
	mfa.Post("/verify", mfaHandler.Verify)
	mfa.Delete("", mfaHandler.Unenroll)

	receipts := protected.Group("/receipts")
	receipts.Post("/scan", receiptHandler.Scan)

	return app
}
