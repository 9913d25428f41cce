package mcp

import (
	"context"

	"hemosim/internal/config"
	"hemosim/internal/distribution"
	"hemosim/internal/simulation"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes the simulator over MCP stdio. It owns the table cache and
// the in-memory run store for the lifetime of the process.
type Server struct {
	cfg   *config.AppConfig
	cache *distribution.Cache
	store *simulation.Store
}

// NewServer creates an MCP server over the given configuration.
func NewServer(cfg *config.AppConfig) *Server {
	return &Server{
		cfg:   cfg,
		cache: distribution.NewCache(cfg.ClampTail),
		store: simulation.NewStore(),
	}
}

// Start registers the tools and serves MCP over stdio until the client
// disconnects.
func (s *Server) Start() error {
	impl := &mcp.Implementation{
		Name:    "hemosim",
		Title:   "Blood Usage Monte Carlo Simulator",
		Version: "0.1.0",
	}
	server := mcp.NewServer(impl, nil)
	s.registerTools(server)

	log.Info().Msg("MCP Server starting Stdio loop")
	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// tables resolves the current distribution tables through the cache, so an
// updated workbook is picked up between tool calls without a restart.
func (s *Server) tables() map[distribution.BloodType]*distribution.Table {
	return s.cache.GetAll(s.cfg.Sources)
}
