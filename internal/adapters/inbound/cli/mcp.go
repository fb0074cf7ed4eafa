package cli

import (
	mcpadapter "github.com/abdidvp/minimart/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the minimart MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start minimart MCP server (stdio)",
		Long:  "Start the minimart MCP server using stdio transport. A tool client can then list, search, edit the catalog, enumerate combinations and check out carts in this session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			s.logger.Info("mcp server starting")
			srv := mcpadapter.NewMinimartMCPServer(mcpadapter.Services{
				Catalog:  s.catalog,
				Combos:   s.combos,
				Checkout: s.checkout,
			})
			return server.ServeStdio(srv)
		},
	}
}
