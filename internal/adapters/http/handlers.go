package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/usecases"
	"github.com/strategickhaos/pipetrades/internal/pkg/metrics"
	"github.com/strategickhaos/pipetrades/internal/pluscode"
)

// DecodeHandler resolves a location code to its bounding box and centroid.
// GET /v1/decode?code=8628QMHH%2BP8 or ?code=QMHH%2BP8+Lake+Charles
func DecodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Query("code")
		if code == "" {
			return errBadRequest(c, "code query parameter is required")
		}

		area, err := deps.Geo.Decode(c.Context(), code)
		if err != nil {
			metrics.DecodeErrors.Inc()
			var derr *pluscode.DecodeError
			if errors.As(err, &derr) {
				return errUnprocessable(c, derr.Reason)
			}
			return errInternal(c, err.Error())
		}

		metrics.CalculationsTotal.WithLabelValues("decode").Inc()
		lat, lon := area.Lat(), area.Lon()
		return c.JSON(fiber.Map{
			"code": code,
			"area": area,
			"centroid": domain.GeoPoint{
				Lat: lat,
				Lon: lon,
			},
			"maps_link": fmt.Sprintf("https://maps.google.com/?q=%f,%f", lat, lon),
		})
	}
}

// DistanceHandler returns the great-circle distance between two points.
// GET /v1/distance?lat1=&lon1=&lat2=&lon2=&unit=mi
func DistanceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat1 := c.QueryFloat("lat1", 0)
		lon1 := c.QueryFloat("lon1", 0)
		lat2 := c.QueryFloat("lat2", 0)
		lon2 := c.QueryFloat("lon2", 0)
		unit := c.Query("unit", "ft")

		if c.Query("lat1") == "" || c.Query("lon1") == "" ||
			c.Query("lat2") == "" || c.Query("lon2") == "" {
			return errBadRequest(c, "lat1, lon1, lat2, and lon2 are required")
		}
		if lat1 < -90 || lat1 > 90 || lat2 < -90 || lat2 > 90 {
			return errBadRequest(c, "latitude must be between -90 and 90")
		}
		if lon1 < -180 || lon1 > 180 || lon2 < -180 || lon2 > 180 {
			return errBadRequest(c, "longitude must be between -180 and 180")
		}

		dist := deps.Geo.Distance(lat1, lon1, lat2, lon2, unit)
		metrics.CalculationsTotal.WithLabelValues("distance").Inc()

		return c.JSON(fiber.Map{
			"from":     domain.GeoPoint{Lat: lat1, Lon: lon1},
			"to":       domain.GeoPoint{Lat: lat2, Lon: lon2},
			"unit":     unit,
			"distance": dist,
		})
	}
}

// HypotenuseHandler solves the planar right triangle.
// GET /v1/hypotenuse?run=62&rise=30
func HypotenuseHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("run") == "" || c.Query("rise") == "" {
			return errBadRequest(c, "run and rise are required")
		}
		run := c.QueryFloat("run", 0)
		rise := c.QueryFloat("rise", 0)

		metrics.CalculationsTotal.WithLabelValues("hypotenuse").Inc()
		return c.JSON(fiber.Map{
			"run":        run,
			"rise":       rise,
			"hypotenuse": deps.Geo.Hypotenuse(run, rise),
		})
	}
}

// BeamHandler estimates wrap material for a beam.
// GET /v1/beam?circ=44&shoes=4&boot=6&rise=0&save=true&crew=alpha&location=8628QMHH%2BP8
func BeamHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("circ") == "" || c.Query("shoes") == "" || c.Query("boot") == "" {
			return errBadRequest(c, "circ, shoes, and boot are required")
		}
		circ := c.QueryFloat("circ", 0)
		shoes := c.QueryInt("shoes", 0)
		boot := c.QueryFloat("boot", 0)
		rise := c.QueryFloat("rise", 0)

		if shoes < 0 {
			return errBadRequest(c, "shoes must not be negative")
		}

		job := domain.NewBeamJob(circ, shoes, boot, rise)
		opts := usecases.EstimateOptions{
			Save:     c.QueryBool("save", false),
			Share:    c.QueryBool("share", false),
			CrewID:   c.Query("crew"),
			Location: c.Query("location"),
		}

		est, saved, err := deps.Beam.EstimateAndRecord(c.Context(), job, opts)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.CalculationsTotal.WithLabelValues(domain.JobKindBeam).Inc()
		if saved != nil {
			metrics.JobsSaved.WithLabelValues(domain.JobKindBeam).Inc()
		}
		if opts.Share {
			metrics.CrewUpdatesShared.Inc()
		}

		resp := fiber.Map{"estimate": est}
		if saved != nil {
			resp["job_id"] = saved.ID
		}
		return c.JSON(resp)
	}
}

// OffsetHandler solves a rolling offset.
// GET /v1/offset?angle=45&offset=5
func OffsetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("angle") == "" || c.Query("offset") == "" {
			return errBadRequest(c, "angle and offset are required")
		}
		angle := c.QueryFloat("angle", 0)
		offset := c.QueryFloat("offset", 0)

		metrics.CalculationsTotal.WithLabelValues(domain.JobKindOffset).Inc()
		return c.JSON(deps.Fitting.RollingOffset(angle, offset))
	}
}

// CutbackHandler solves a fitting cutback.
// GET /v1/cutback?angle=90&offset=5
func CutbackHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("angle") == "" || c.Query("offset") == "" {
			return errBadRequest(c, "angle and offset are required")
		}
		angle := c.QueryFloat("angle", 0)
		offset := c.QueryFloat("offset", 0)

		metrics.CalculationsTotal.WithLabelValues(domain.JobKindCutback).Inc()
		return c.JSON(deps.Fitting.Cutback(angle, offset))
	}
}

// CalibrateHandler compares a satellite reference distance to a field reading.
// GET /v1/calibrate?satellite=305&field=311.2&unit=ft&save=true&crew=alpha
func CalibrateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("satellite") == "" || c.Query("field") == "" {
			return errBadRequest(c, "satellite and field are required")
		}
		satellite := c.QueryFloat("satellite", 0)
		field := c.QueryFloat("field", 0)
		unit := c.Query("unit", "ft")

		if !c.QueryBool("save", false) {
			metrics.CalculationsTotal.WithLabelValues(domain.JobKindCalibration).Inc()
			return c.JSON(deps.Calibration.Check(satellite, field))
		}

		result, saved, err := deps.Calibration.CheckAndRecord(c.Context(), satellite, field, c.Query("crew"), unit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.CalculationsTotal.WithLabelValues(domain.JobKindCalibration).Inc()
		resp := fiber.Map{"result": result}
		if saved != nil {
			metrics.JobsSaved.WithLabelValues(domain.JobKindCalibration).Inc()
			resp["job_id"] = saved.ID
		}
		return c.JSON(resp)
	}
}

// ListJobsHandler returns saved calculations, newest first.
// GET /v1/jobs?kind=beam&limit=50&offset=0
func ListJobsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := c.Query("kind")
		limit := c.QueryInt("limit", 50)
		offset := c.QueryInt("offset", 0)

		jobs, total, err := deps.Jobs.List(c.Context(), kind, limit, offset)
		if err != nil {
			if errors.Is(err, usecases.ErrUnknownKind) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: jobs, Pagination: pg})
	}
}

// GetJobHandler returns a single saved calculation by ID.
func GetJobHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "job id is required")
		}
		job, err := deps.Jobs.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "job not found")
		}
		return c.JSON(job)
	}
}

// JobStatsHandler returns counts from the jobs table.
func JobStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := deps.Jobs.Stats(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(stats)
	}
}
