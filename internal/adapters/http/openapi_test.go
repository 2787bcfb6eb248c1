package http_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

// findOpenAPISpec locates the openapi.yaml file by walking up from the test directory.
func findOpenAPISpec(t *testing.T) string {
	dir, _ := os.Getwd()

	// Look for api/openapi.yaml by going up directories
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "api", "openapi.yaml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}

	t.Fatalf("could not find api/openapi.yaml")
	return ""
}

// TestOpenAPISpec validates the OpenAPI specification is valid.
func TestOpenAPISpec(t *testing.T) {
	specPath := findOpenAPISpec(t)
	data, err := os.ReadFile(specPath)
	if err != nil {
		t.Fatalf("failed to read openapi.yaml: %v", err)
	}

	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	// Check that key paths exist
	expectedPaths := []string{
		"/v1/health",
		"/v1/ready",
		"/v1/decode",
		"/v1/distance",
		"/v1/hypotenuse",
		"/v1/pythag",
		"/v1/beam",
		"/v1/offset",
		"/v1/cutback",
		"/v1/calibrate",
		"/v1/jobs",
		"/v1/jobs/stats",
		"/v1/jobs/{id}",
		"/graphql",
	}

	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found in spec", path)
		}
	}

	// Verify key schemas exist
	expectedSchemas := []string{
		"GeoPoint",
		"CodeArea",
		"BeamEstimate",
		"OffsetResult",
		"CutbackResult",
		"CalibrationResult",
		"Job",
		"JobStats",
		"APIError",
		"Pagination",
	}

	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI spec valid: %d paths, %d schemas", len(spec.Paths.Map()), len(spec.Components.Schemas))
}

// TestOpenAPIInfo verifies spec metadata.
func TestOpenAPIInfo(t *testing.T) {
	specPath := findOpenAPISpec(t)
	data, err := os.ReadFile(specPath)
	if err != nil {
		t.Fatalf("failed to read openapi.yaml: %v", err)
	}

	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}

	if spec.Info.Title != "PipeTrades Field API" {
		t.Errorf("expected title 'PipeTrades Field API', got %q", spec.Info.Title)
	}

	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}

	if spec.Info.Description == "" {
		t.Error("expected non-empty description")
	}

	if len(spec.Servers) == 0 {
		t.Error("expected at least one server")
	}

	t.Logf("OpenAPI Info: %s v%s @ %s", spec.Info.Title, spec.Info.Version, spec.Servers[0].URL)
}

// TestPythagMarkedDeprecated keeps the spec honest about the legacy alias.
func TestPythagMarkedDeprecated(t *testing.T) {
	specPath := findOpenAPISpec(t)
	data, err := os.ReadFile(specPath)
	if err != nil {
		t.Fatalf("failed to read openapi.yaml: %v", err)
	}

	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}

	item := spec.Paths.Find("/v1/pythag")
	if item == nil || item.Get == nil {
		t.Fatal("missing GET /v1/pythag")
	}
	if !item.Get.Deprecated {
		t.Error("GET /v1/pythag must be marked deprecated")
	}
}
