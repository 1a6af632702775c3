package http

import (
	"context"
	"fmt"
	"net/http"

	"storefront/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

// LoadContract parses the embedded OpenAPI document and validates it.
func LoadContract(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}
	return doc, nil
}

// WithContract makes NewEcho serve doc at /openapi.json and a Swagger UI
// reading it under /swagger/.
func (s *Server) WithContract(doc *openapi3.T) *Server {
	s.contract = doc
	return s
}

func (s *Server) Contract(c echo.Context) error {
	return c.JSON(http.StatusOK, s.contract)
}
