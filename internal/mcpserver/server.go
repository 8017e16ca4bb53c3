// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the portfolio read-only via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/portfolio/internal/models"
)

const contactURI = "portfolio://contact"

// Portfolio lists projects and skills.
type Portfolio interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListSkills(ctx context.Context) ([]models.Skill, error)
}

// Server wraps the MCP server with portfolio tools.
type Server struct {
	mcp       *server.MCPServer
	portfolio Portfolio
	contact   ContactInfo
}

// New creates a new MCP server with all portfolio tools registered.
func New(portfolio Portfolio, contact ContactInfo, version string) *Server {
	s := &Server{portfolio: portfolio, contact: contact}

	s.mcp = server.NewMCPServer(
		"Portfolio",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List portfolio projects, featured first then newest."),
		mcp.WithString("category", mcp.Description("Only projects in this category (case-insensitive)")),
		mcp.WithBoolean("featured_only", mcp.Description("Only featured projects")),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("list_skills",
		mcp.WithDescription("List skills with their level and category."),
		mcp.WithString("category", mcp.Description("Only skills in this category (case-insensitive)")),
	), s.listSkills)

	s.mcp.AddTool(mcp.NewTool("get_contact_info",
		mcp.WithDescription("Returns the owner's contact details and response times."),
	), s.getContactInfo)

	s.mcp.AddResource(
		mcp.NewResource(contactURI, "Contact",
			mcp.WithResourceDescription("Owner contact details and response times."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContactResource,
	)

	return s
}

// Serve speaks MCP over in/out until in reaches EOF or ctx is cancelled.
// Cancellation is a clean stop.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	err := server.NewStdioServer(s.mcp).Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	featuredOnly := req.GetBool("featured_only", false)

	projects, err := s.portfolio.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if featuredOnly && !p.Featured {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	return jsonResult(out)
}

func (s *Server) listSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")

	skills, err := s.portfolio.ListSkills(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]models.Skill, 0, len(skills))
	for _, sk := range skills {
		if category != "" && !strings.EqualFold(sk.Category, category) {
			continue
		}
		out = append(out, sk)
	}
	return jsonResult(out)
}

func (s *Server) getContactInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.contact.Markdown()), nil
}

func (s *Server) readContactResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contactURI,
			MIMEType: "text/markdown",
			Text:     s.contact.Markdown(),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
