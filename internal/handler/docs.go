package handler

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"

	"github.com/BenjaminKakai/clientmanagementbackend/docs"
)

// DocsHandler serves the embedded OpenAPI document and a Swagger UI page
type DocsHandler struct {
	spec []byte

	jsonOnce sync.Once
	jsonSpec []byte
	jsonErr  error
}

// NewDocsHandler creates a new docs handler
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{spec: docs.OpenAPISpec}
}

// RegisterRoutes registers documentation routes
func (h *DocsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/openapi.yaml", h.ServeOpenAPISpec)
	app.Get("/openapi.json", h.ServeOpenAPIJSON)
	app.Get("/docs", h.ServeSwaggerUI)
}

// ServeOpenAPISpec serves the OpenAPI YAML specification
func (h *DocsHandler) ServeOpenAPISpec(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/x-yaml")
	return c.Send(h.spec)
}

// ServeOpenAPIJSON serves the same document converted to JSON once
func (h *DocsHandler) ServeOpenAPIJSON(c *fiber.Ctx) error {
	h.jsonOnce.Do(func() {
		h.jsonSpec, h.jsonErr = yamlToJSON(h.spec)
	})
	if h.jsonErr != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to render OpenAPI document")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(h.jsonSpec)
}

func yamlToJSON(in []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI YAML: %w", err)
	}
	return json.Marshal(doc)
}

// ServeSwaggerUI serves the Swagger UI HTML page
func (h *DocsHandler) ServeSwaggerUI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(swaggerUI)
}

const swaggerUI = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Client Intake API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "/openapi.yaml",
                dom_id: '#swagger-ui',
                persistAuthorization: true
            });
        };
    </script>
</body>
</html>`
