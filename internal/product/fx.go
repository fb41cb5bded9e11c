package product

import (
	"github.com/udyamworks/billbook/internal/product/repository"
	"github.com/udyamworks/billbook/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
