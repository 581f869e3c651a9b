// ABOUTME: MCP server setup for the patient health twin store.
// ABOUTME: Wraps MCP server with storage access and injectable clock/rng.
package mcp

import (
	"context"
	"math/rand"
	"time"

	"github.com/harperreed/healthtwin/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with patient storage access.
type Server struct {
	mcpServer   *mcp.Server
	store       storage.Store
	wearableDir string

	now func() time.Time
	rng *rand.Rand
}

// NewServer creates a new MCP server over the given patient store.
// wearableDir receives per-batch CSV backups of generated imports.
func NewServer(store storage.Store, wearableDir string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthtwin",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:   mcpServer,
		store:       store,
		wearableDir: wearableDir,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
