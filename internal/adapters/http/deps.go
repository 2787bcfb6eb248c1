package http

import (
	"github.com/nats-io/nats.go"

	"github.com/strategickhaos/pipetrades/internal/adapters/postgres"
	"github.com/strategickhaos/pipetrades/internal/adapters/valkey"
	"github.com/strategickhaos/pipetrades/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Geo         *usecases.GeoService
	Beam        *usecases.BeamService
	Fitting     *usecases.FittingService
	Calibration *usecases.CalibrationService
	Jobs        *usecases.JobService
	Crew        *usecases.CrewService
	NATS        *nats.Conn
	DB          *postgres.DB
	Cache       *valkey.Cache
}
