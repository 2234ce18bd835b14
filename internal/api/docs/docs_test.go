package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/inventory-client/internal/api/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	// Act
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())

	// Assert
	require.NoError(t, err)

	var parsed struct {
		Swagger  string                    `json:"swagger"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "2.0", parsed.Swagger)
	assert.Equal(t, "/api/v1", parsed.BasePath)
	for _, path := range []string{"/products", "/products/{id}", "/products/export", "/products/import", "/dashboard", "/mode", "/categories"} {
		assert.Contains(t, parsed.Paths, path)
	}
}
