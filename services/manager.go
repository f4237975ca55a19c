package services

import (
	"freshcatch_server/database"
	"freshcatch_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	ProductService *ProductService
	CartService    *CartService
	OrderService   *OrderService
	StatsService   *StatsService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	authService := NewAuthService(cfg, logger, db)
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	cartService := NewCartService(logger, db, productService)
	orderService := NewOrderService(logger, cfg, db, cacheService, emailService, authService)
	statsService := NewStatsService(logger, db, authService)

	return &ServiceManager{
		AuthService:    authService,
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		ProductService: productService,
		CartService:    cartService,
		OrderService:   orderService,
		StatsService:   statsService,
	}
}
