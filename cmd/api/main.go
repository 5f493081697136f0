package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-pos-erp/internal/handler"
	"go-pos-erp/internal/middleware"
	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"
	"go-pos-erp/internal/service"
	"go-pos-erp/internal/ws"
	"go-pos-erp/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Privilege{}, &model.Role{}, &model.User{},
		&model.Branch{}, &model.Category{}, &model.Brand{}, &model.ProductModel{},
		&model.Product{}, &model.BranchStock{}, &model.Customer{},
		&model.Sale{}, &model.SaleItem{},
		&model.Transfer{}, &model.TransferItem{},
	)

	// 3. Seed default privileges, roles, branch, and admin user
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	branchRepo := repository.NewBranchRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	transferRepo := repository.NewTransferRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	stockService := service.NewStockService(stockRepo, branchRepo)
	cartService := service.NewCartService(productRepo, stockService)
	// No compensating action is registered: a header whose items failed to
	// persist stays in the database and surfaces as an OrphanedSaleError.
	saleService := service.NewSaleService(saleRepo, model.TaxConfigFromEnv(), cartService, nil, wsHub)
	transferService := service.NewTransferService(transferRepo, stockService, wsHub)
	catalogService := service.NewCatalogService(productRepo, wsHub)
	dashService := service.NewDashboardService(saleRepo, stockRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo, branchRepo)

	branchHandler := handler.NewBranchHandler(branchRepo)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	stockHandler := handler.NewStockHandler(stockService)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	cartHandler := handler.NewCartHandler(cartService, saleService)
	saleHandler := handler.NewSaleHandler(saleService)
	transferHandler := handler.NewTransferHandler(transferService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS ERP v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat) // Heartbeat uses Auth but available to all authenticated

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes
	protected.Get("/dashboard/:branchId", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetBranchStats)

	// Branch Routes
	protected.Get("/branches", branchHandler.GetBranches)
	protected.Get("/branches/:id", branchHandler.GetBranch)
	protected.Post("/branches", middleware.RequirePrivilege("branch:create"), branchHandler.CreateBranch)
	protected.Get("/branches/:branchId/stock", middleware.RequirePrivilege("stock:view"), stockHandler.GetBranchStock)
	protected.Get("/branches/:branchId/stock/snapshot", middleware.RequirePrivilege("stock:view"), stockHandler.GetSnapshot)

	// Stock Routes
	protected.Put("/stock", middleware.RequirePrivilege("stock:update"), stockHandler.SetLevel)

	// Product Routes (with privilege checks)
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)

	// Customer Routes
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Post("/customers", middleware.RequirePrivilege("customer:create"), customerHandler.CreateCustomer)

	// Cart Routes (per-session sale basket)
	protected.Get("/cart", cartHandler.GetCart)
	protected.Put("/cart/branch/:branchId", cartHandler.SelectBranch)
	protected.Post("/cart/items/:productId", cartHandler.AddItem)
	protected.Delete("/cart/items/:productId", cartHandler.RemoveItem)
	protected.Patch("/cart/items/:productId", cartHandler.UpdateQuantity)
	protected.Post("/cart/checkout", middleware.RequirePrivilege("sale:create"), cartHandler.Checkout)

	// Sale Routes (with privilege checks)
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), saleHandler.GetSales)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), saleHandler.GetSale)
	protected.Put("/sales/:id/items", middleware.RequirePrivilege("sale:edit"), saleHandler.ReplaceItems)
	protected.Delete("/sales/:id", middleware.RequirePrivilege("sale:void"), saleHandler.VoidSale)
	protected.Put("/sales/:id/permissions", middleware.RequirePrivilege("sale:permissions"), saleHandler.SetPermissionFlag)

	// Transfer Routes (with privilege checks)
	protected.Get("/transfers", middleware.RequirePrivilege("transfer:view"), transferHandler.GetTransfers)
	protected.Get("/transfers/:id", middleware.RequirePrivilege("transfer:view"), transferHandler.GetTransfer)
	protected.Post("/transfers", middleware.RequirePrivilege("transfer:create"), transferHandler.CreateTransfer)
	protected.Put("/transfers/:id", middleware.RequirePrivilege("transfer:edit"), transferHandler.UpdateTransfer)
	protected.Post("/transfers/:id/ship", middleware.RequirePrivilege("transfer:ship"), transferHandler.Ship)
	protected.Post("/transfers/:id/receive", middleware.RequirePrivilege("transfer:receive"), transferHandler.Receive)
	protected.Post("/transfers/:id/cancel", middleware.RequirePrivilege("transfer:cancel"), transferHandler.Cancel)

	// User Management Routes (with privilege checks)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates default privileges, roles, the main branch, and the
// admin user if they don't exist
func seedDefaults(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	branchRepo := repository.NewBranchRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("✅ ADMIN role assigned all privileges")
	}

	// VENDEDOR gets the counter-sale subset (no user management, no
	// stock edits, no sale/transfer overrides)
	vendedorRole, err := roleRepo.FindByCode(model.RoleVendedor)
	if err == nil && len(vendedorRole.Privileges) == 0 {
		vendedorPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if strings.HasPrefix(p.Code, "user:") || p.Code == "stock:update" ||
				p.Code == "sale:permissions" || p.Code == "branch:create" {
				continue
			}
			vendedorPrivileges = append(vendedorPrivileges, p)
		}
		db.Model(&vendedorRole).Association("Privileges").Replace(vendedorPrivileges)
		log.Println("✅ VENDEDOR role assigned counter-sale privileges")
	}

	// 4. Seed the main branch
	branches, _ := branchRepo.FindAll()
	var mainBranch *model.Branch
	if len(branches) == 0 {
		mainBranch = &model.Branch{Name: "Sucursal Central", IsActive: true}
		mainBranch.CreatedBy = "system"
		mainBranch.UpdatedBy = "system"
		if err := branchRepo.Create(mainBranch); err != nil {
			log.Printf("Warning: Failed to create main branch: %v", err)
			mainBranch = nil
		} else {
			log.Println("✅ Main branch created: Sucursal Central")
		}
	} else {
		mainBranch = &branches[0]
	}

	// 5. Create default admin user with ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:       "admin@example.com",
			FullName:    "Administrator",
			PhoneNumber: "",
			RoleID:      &adminRole.ID,
			IsActive:    true,
			Privileges:  adminRole.Privileges,
		}
		if mainBranch != nil {
			admin.Branches = []model.Branch{*mainBranch}
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin@example.com / admin123 (ADMIN)")
		}
	}
}
