package reference

import (
	"github.com/udyamworks/billbook/internal/reference/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reference.service",
	fx.Provide(service.New),
)
