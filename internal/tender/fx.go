package tender

import (
	"github.com/smallbiznis/tenderbase/internal/tender/repository"
	"github.com/smallbiznis/tenderbase/internal/tender/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tender.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
