package cli

import (
	"context"
	"fmt"

	"go-pos-terminal/internal/config"
	"go-pos-terminal/internal/repository"
	"go-pos-terminal/internal/service"
	"go-pos-terminal/internal/shell"
	"go-pos-terminal/pkg/database"
	"go-pos-terminal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds everything a command needs once the store is open
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB

	products  repository.ProductRepository
	customers repository.CustomerRepository
	users     repository.UserRepository

	svc shell.Services
}

// newApp loads config, opens and migrates the store, ensures the default
// admin exists and wires repositories into services
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(v, cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewZapLogger(cfg.ZapConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.ConnectDB(cfg.Database(), log)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a := &app{
		cfg:       cfg,
		log:       log,
		db:        db,
		products:  repository.NewProductRepo(db),
		customers: repository.NewCustomerRepo(db),
		users:     repository.NewUserRepo(db),
	}

	created, err := a.users.SeedDefaults(ctx)
	if err != nil {
		log.Warn("failed to seed default admin", zap.Error(err))
	} else if created {
		log.Info("default admin created", zap.String("username", "admin"))
	}

	reports, err := repository.NewReportRepo(db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a.svc = shell.Services{
		Auth:      service.NewAuthService(a.users, log),
		Products:  service.NewProductService(a.products, log),
		Customers: service.NewCustomerService(a.customers, log),
		Users:     service.NewUserService(a.users, log),
		Sales: service.NewSaleService(a.products, a.customers, repository.NewSaleRepo(db), db,
			service.SaleOptions{StrictStock: cfg.Sales.StrictStock}, log),
		Reports: service.NewReportService(reports, cfg.Sales.LowStockThreshold),
		Backup:  service.NewBackupService(db, cfg.DB.Path, cfg.Backup.Dir, log),
	}
	return a, nil
}

// close releases the store; after a restore it is already closed
func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Debug("database close", zap.Error(err))
	}
	_ = a.log.Sync()
}
