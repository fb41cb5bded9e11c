package customer

import (
	"github.com/udyamworks/billbook/internal/customer/repository"
	"github.com/udyamworks/billbook/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
