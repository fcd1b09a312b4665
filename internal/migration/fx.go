package migration

import (
	"context"

	"github.com/smallbiznis/tenderbase/internal/config"
	orderdomain "github.com/smallbiznis/tenderbase/internal/order/domain"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	"github.com/smallbiznis/tenderbase/internal/seed"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, seeder *seed.Seeder) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&productdomain.Product{},
				&tenderdomain.Tender{},
				&orderdomain.Order{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedSampleData && !cfg.IsProduction() {
			return seeder.Run(context.Background())
		}
		return nil
	}),
)
