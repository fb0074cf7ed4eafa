package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const catalogURI = "minimart://catalog"

// registerResources registers all minimart MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			catalogURI,
			"Catalog",
			mcplib.WithResourceDescription("Every product in the session catalog, in code order"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleCatalogResource,
	)

	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"minimart://products/{code}",
			"Product",
			mcplib.WithTemplateDescription("A single product looked up by code"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		h.handleProductResource,
	)
}

func (h *handlers) handleCatalogResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(h.svc.Catalog.List(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      catalogURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) handleProductResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	code := templateArg(request.Params.Arguments, "code")
	if code == "" {
		return nil, fmt.Errorf("product code is required")
	}

	p, err := h.svc.Catalog.Find(code)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling product: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// templateArg reads a matched URI template variable, which arrives either as
// a string or as a single-element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
