package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/abdidvp/minimart/internal/adapters/inbound/input"
	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/checkout"
)

const defaultComboLimit = 50

// registerTools registers all minimart MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcplib.NewTool("catalog_list",
			mcplib.WithDescription("Lists every product in the catalog in code order as JSON"),
		),
		h.handleList,
	)

	s.AddTool(
		mcplib.NewTool("catalog_find",
			mcplib.WithDescription("Looks up one product by code. Short forms like 1 or 00001 resolve to MH00000001"),
			mcplib.WithString("code",
				mcplib.Required(),
				mcplib.Description("Product code in any accepted form"),
			),
		),
		h.handleFind,
	)

	s.AddTool(
		mcplib.NewTool("catalog_search",
			mcplib.WithDescription("Finds products whose name contains the text, ignoring case"),
			mcplib.WithString("text",
				mcplib.Required(),
				mcplib.Description("Substring to look for in product names"),
			),
		),
		h.handleSearch,
	)

	s.AddTool(
		mcplib.NewTool("catalog_add",
			mcplib.WithDescription("Adds a product to the catalog"),
			mcplib.WithString("code", mcplib.Required(), mcplib.Description("Product code")),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Product name")),
			mcplib.WithString("unit", mcplib.Description("Unit of sale, e.g. Box")),
			mcplib.WithString("price", mcplib.Required(), mcplib.Description("Unit price as a decimal string")),
			mcplib.WithNumber("stock", mcplib.Required(), mcplib.Description("Units in stock")),
			mcplib.WithString("expiry", mcplib.Required(), mcplib.Description("Expiry date, e.g. 2026-01-01")),
		),
		h.handleAdd,
	)

	s.AddTool(
		mcplib.NewTool("catalog_delete",
			mcplib.WithDescription("Removes a product from the catalog"),
			mcplib.WithString("code", mcplib.Required(), mcplib.Description("Product code in any accepted form")),
		),
		h.handleDelete,
	)

	s.AddTool(
		mcplib.NewTool("combo_enumerate",
			mcplib.WithDescription("Enumerates size-m combinations of the first n catalog products with their total prices"),
			mcplib.WithNumber("take", mcplib.Required(), mcplib.Description("How many products to draw from the start of the catalog (n)")),
			mcplib.WithNumber("size", mcplib.Required(), mcplib.Description("Products per combination (m)")),
			mcplib.WithNumber("limit", mcplib.Description("Maximum combinations to return (default 50)")),
		),
		h.handleCombos,
	)

	s.AddTool(
		mcplib.NewTool("checkout",
			mcplib.WithDescription("Builds one cart from the given lines and commits it, decrementing stock"),
			mcplib.WithString("lines",
				mcplib.Required(),
				mcplib.Description("Comma-separated CODE=QTY entries, e.g. MH00000001=2,3=1"),
			),
		),
		h.handleCheckout,
	)
}

func (h *handlers) handleList(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	return jsonResult(h.svc.Catalog.List())
}

func (h *handlers) handleFind(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	p, err := h.svc.Catalog.Find(code)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(p)
}

func (h *handlers) handleSearch(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(h.svc.Catalog.Search(text))
}

func (h *handlers) handleAdd(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	in, err := productInput(request)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	p, err := h.svc.Catalog.Add(in)
	if err != nil {
		return errorResult(fmt.Sprintf("add failed: %v", err)), nil
	}
	return jsonResult(p)
}

func productInput(request mcplib.CallToolRequest) (domain.ProductInput, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return domain.ProductInput{}, err
	}
	name, err := request.RequireString("name")
	if err != nil {
		return domain.ProductInput{}, err
	}
	rawPrice, err := request.RequireString("price")
	if err != nil {
		return domain.ProductInput{}, err
	}
	price, err := input.Price(rawPrice)
	if err != nil {
		return domain.ProductInput{}, err
	}
	stock, err := request.RequireInt("stock")
	if err != nil {
		return domain.ProductInput{}, err
	}
	rawExpiry, err := request.RequireString("expiry")
	if err != nil {
		return domain.ProductInput{}, err
	}
	expiry, err := input.Expiry(rawExpiry)
	if err != nil {
		return domain.ProductInput{}, err
	}
	return domain.ProductInput{
		Code:      code,
		Name:      name,
		Unit:      request.GetString("unit", ""),
		UnitPrice: price,
		Stock:     stock,
		Expiry:    expiry,
	}, nil
}

func (h *handlers) handleDelete(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if err := h.svc.Catalog.Remove(code); err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(fmt.Sprintf("deleted %s", domain.NormalizeCode(code))), nil
}

// comboView is the wire form of a combination: codes instead of full records.
type comboView struct {
	Seq   int             `json:"seq"`
	Codes []string        `json:"codes"`
	Total decimal.Decimal `json:"total"`
}

type comboPage struct {
	Take         int         `json:"take"`
	Size         int         `json:"size"`
	Count        string      `json:"count"`
	Truncated    bool        `json:"truncated"`
	Combinations []comboView `json:"combinations"`
}

func (h *handlers) handleCombos(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	take, err := request.RequireInt("take")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	size, err := request.RequireInt("size")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	limit := request.GetInt("limit", defaultComboLimit)
	if limit <= 0 {
		return errorResult("limit must be positive"), nil
	}

	plan, err := h.svc.Combos.Plan(take, size)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	seq, err := h.svc.Combos.Enumerate(plan)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	page := comboPage{Take: take, Size: size, Count: plan.Count.String(), Combinations: []comboView{}}
	for c := range seq {
		if len(page.Combinations) == limit {
			page.Truncated = true
			break
		}
		if ctx.Err() != nil {
			return errorResult("enumeration cancelled"), nil
		}
		page.Combinations = append(page.Combinations, comboView{Seq: c.Seq, Codes: c.Codes(), Total: c.Total})
	}
	return jsonResult(page)
}

func (h *handlers) handleCheckout(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	raw, err := request.RequireString("lines")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	lines, err := input.ParseLines(raw)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	h.checkoutMu.Lock()
	defer h.checkoutMu.Unlock()

	receipt, err := h.checkoutLines(lines)
	if err != nil {
		return errorResult(fmt.Sprintf("checkout failed: %v", err)), nil
	}
	return jsonResult(receipt)
}

func (h *handlers) checkoutLines(lines []input.Line) (checkout.Receipt, error) {
	svc := h.svc.Checkout
	svc.Begin()
	for _, l := range lines {
		if err := svc.Add(l.Token, l.Quantity); err != nil {
			svc.Cancel()
			return checkout.Receipt{}, fmt.Errorf("line %s=%d: %w", l.Token, l.Quantity, err)
		}
	}
	receipt, err := svc.Finish()
	if err != nil {
		svc.Cancel()
		return checkout.Receipt{}, err
	}
	return receipt, nil
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
