package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	codeAreaType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CodeArea",
		Fields: graphql.Fields{
			"south": &graphql.Field{Type: graphql.Float},
			"west":  &graphql.Field{Type: graphql.Float},
			"north": &graphql.Field{Type: graphql.Float},
			"east":  &graphql.Field{Type: graphql.Float},
		},
	})

	decodedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DecodedLocation",
		Fields: graphql.Fields{
			"area":     &graphql.Field{Type: codeAreaType},
			"centroid": &graphql.Field{Type: geoPointType},
		},
	})

	beamEstimateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BeamEstimate",
		Fields: graphql.Fields{
			"run":         &graphql.Field{Type: graphql.Float},
			"beam_length": &graphql.Field{Type: graphql.Float},
			"band_length": &graphql.Field{Type: graphql.Float},
			"band_qty":    &graphql.Field{Type: graphql.Int},
			"mesh_length": &graphql.Field{Type: graphql.Float},
			"mesh_qty":    &graphql.Field{Type: graphql.Int},
		},
	})

	offsetType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RollingOffset",
		Fields: graphql.Fields{
			"angle":   &graphql.Field{Type: graphql.Float},
			"offset":  &graphql.Field{Type: graphql.Float},
			"travel":  &graphql.Field{Type: graphql.Float},
			"advance": &graphql.Field{Type: graphql.Float},
		},
	})

	cutbackType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Cutback",
		Fields: graphql.Fields{
			"angle":  &graphql.Field{Type: graphql.Float},
			"offset": &graphql.Field{Type: graphql.Float},
			"cut":    &graphql.Field{Type: graphql.Float},
		},
	})

	calibrationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Calibration",
		Fields: graphql.Fields{
			"satellite":  &graphql.Field{Type: graphql.Float},
			"field":      &graphql.Field{Type: graphql.Float},
			"difference": &graphql.Field{Type: graphql.Float},
			"pct_error":  &graphql.Field{Type: graphql.Float},
			"calibrated": &graphql.Field{Type: graphql.Boolean},
		},
	})

	jobType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Job",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"kind":     &graphql.Field{Type: graphql.String},
			"crew_id":  &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: graphql.String},
			"created_at": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if j, ok := p.Source.(domain.Job); ok {
						return j.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), nil
					}
					if j, ok := p.Source.(*domain.Job); ok {
						return j.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), nil
					}
					return nil, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"decode": &graphql.Field{
				Type:        decodedType,
				Description: "Decode a location code to its bounding box and centroid",
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					code := p.Args["code"].(string)
					area, err := deps.Geo.Decode(p.Context, code)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"area": map[string]interface{}{
							"south": area.South,
							"west":  area.West,
							"north": area.North,
							"east":  area.East,
						},
						"centroid": map[string]interface{}{
							"lat": area.Lat(),
							"lon": area.Lon(),
						},
					}, nil
				},
			},
			"distance": &graphql.Field{
				Type:        graphql.Float,
				Description: "Great-circle distance between two points",
				Args: graphql.FieldConfigArgument{
					"lat1": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon1": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lat2": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon2": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"unit": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "ft"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Geo.Distance(
						p.Args["lat1"].(float64), p.Args["lon1"].(float64),
						p.Args["lat2"].(float64), p.Args["lon2"].(float64),
						p.Args["unit"].(string),
					), nil
				},
			},
			"hypotenuse": &graphql.Field{
				Type:        graphql.Float,
				Description: "Right-triangle hypotenuse for a run and rise",
				Args: graphql.FieldConfigArgument{
					"run":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"rise": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Geo.Hypotenuse(p.Args["run"].(float64), p.Args["rise"].(float64)), nil
				},
			},
			"beamEstimate": &graphql.Field{
				Type:        beamEstimateType,
				Description: "Wrap material estimate for a beam",
				Args: graphql.FieldConfigArgument{
					"circ":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"shoes": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"boot":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"rise":  &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					job := domain.NewBeamJob(
						p.Args["circ"].(float64),
						p.Args["shoes"].(int),
						p.Args["boot"].(float64),
						p.Args["rise"].(float64),
					)
					est := deps.Beam.Estimate(job)
					return map[string]interface{}{
						"run":         est.Run,
						"beam_length": est.BeamLength,
						"band_length": est.BandLength,
						"band_qty":    est.BandQty,
						"mesh_length": est.MeshLength,
						"mesh_qty":    est.MeshQty,
					}, nil
				},
			},
			"rollingOffset": &graphql.Field{
				Type:        offsetType,
				Description: "Travel and advance for a rolling offset",
				Args: graphql.FieldConfigArgument{
					"angle":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"offset": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r := deps.Fitting.RollingOffset(p.Args["angle"].(float64), p.Args["offset"].(float64))
					return map[string]interface{}{
						"angle": r.Angle, "offset": r.Offset,
						"travel": r.Travel, "advance": r.Advance,
					}, nil
				},
			},
			"cutback": &graphql.Field{
				Type:        cutbackType,
				Description: "Cutback for a fitting angle and offset",
				Args: graphql.FieldConfigArgument{
					"angle":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"offset": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r := deps.Fitting.Cutback(p.Args["angle"].(float64), p.Args["offset"].(float64))
					return map[string]interface{}{
						"angle": r.Angle, "offset": r.Offset, "cut": r.Cut,
					}, nil
				},
			},
			"calibrate": &graphql.Field{
				Type:        calibrationType,
				Description: "Instrument drift between satellite and field readings",
				Args: graphql.FieldConfigArgument{
					"satellite": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"field":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r := deps.Calibration.Check(p.Args["satellite"].(float64), p.Args["field"].(float64))
					return map[string]interface{}{
						"satellite": r.Satellite, "field": r.Field,
						"difference": r.Difference, "pct_error": r.PctError,
						"calibrated": r.Calibrated,
					}, nil
				},
			},
			"jobs": &graphql.Field{
				Type:        graphql.NewList(jobType),
				Description: "Saved calculations, newest first",
				Args: graphql.FieldConfigArgument{
					"kind":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					jobs, _, err := deps.Jobs.List(p.Context,
						p.Args["kind"].(string), p.Args["limit"].(int), p.Args["offset"].(int))
					return jobs, err
				},
			},
			"job": &graphql.Field{
				Type:        jobType,
				Description: "A single saved calculation by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Jobs.GetByID(p.Context, p.Args["id"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
