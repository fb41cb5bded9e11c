package invoice

import (
	"github.com/udyamworks/billbook/internal/invoice/repository"
	"github.com/udyamworks/billbook/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
