package dashboard

import (
	"github.com/udyamworks/billbook/internal/dashboard/repository"
	"github.com/udyamworks/billbook/internal/dashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
