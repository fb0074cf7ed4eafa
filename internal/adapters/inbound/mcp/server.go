package mcp

import (
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/minimart/internal/application"
)

// Services is the session a tool client works against.
type Services struct {
	Catalog  *application.CatalogService
	Combos   *application.ComboService
	Checkout *application.CheckoutService
}

// handlers carries the session into tool and resource handlers. The checkout
// service holds a single open cart, so checkout calls are serialized.
type handlers struct {
	svc        Services
	checkoutMu sync.Mutex
}

// NewMinimartMCPServer creates an MCP server with all minimart tools and
// resources registered over the given session.
func NewMinimartMCPServer(svc Services) *server.MCPServer {
	s := server.NewMCPServer(
		"minimart",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{svc: svc}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
