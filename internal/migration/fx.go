package migration

import (
	businessdomain "github.com/udyamworks/billbook/internal/business/domain"
	"github.com/udyamworks/billbook/internal/config"
	customerdomain "github.com/udyamworks/billbook/internal/customer/domain"
	invoicedomain "github.com/udyamworks/billbook/internal/invoice/domain"
	productdomain "github.com/udyamworks/billbook/internal/product/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// mysql and sqlite deployments (and tests) rely on gorm's schema
		// sync instead of versioned migrations.
		if err := conn.AutoMigrate(
			&businessdomain.Business{},
			&businessdomain.Settings{},
			&customerdomain.Customer{},
			&productdomain.Product{},
			&invoicedomain.Invoice{},
			&invoicedomain.Sequence{},
		); err != nil {
			return err
		}
		return conn.Exec(
			`INSERT INTO sequences (name, value) SELECT ?, 0 WHERE NOT EXISTS (SELECT 1 FROM sequences WHERE name = ?)`,
			invoicedomain.SequenceInvoices, invoicedomain.SequenceInvoices,
		).Error
	}),
)
