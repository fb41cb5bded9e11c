package business

import (
	"github.com/udyamworks/billbook/internal/business/repository"
	"github.com/udyamworks/billbook/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
