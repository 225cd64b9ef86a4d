// Package mcpserver exposes the applied templates of a session as MCP tools
// so that agents can list, validate and generate from them.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentic-research/randgen/internal/random"
	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/agentic-research/randgen/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// maxCount caps how many values a single generate call may return.
const maxCount = 10000

// Server wires session operations to MCP tools.
type Server struct {
	sess   *session.Session
	server *server.MCPServer
	log    *zap.SugaredLogger
}

// New registers the tools for sess.
func New(sess *session.Session, version string, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{
		sess: sess,
		log:  log,
		server: server.NewMCPServer(
			"randgen",
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer {
	return s.server
}

// ServeStdio serves MCP over stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.log.Infow("serving mcp over stdio")
	return server.ServeStdio(s.server)
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_templates",
		mcp.WithDescription("List the available templates and whether each can generate data"),
	)
	s.server.AddTool(listTool, s.handleList)

	validateTool := mcp.NewTool("validate_templates",
		mcp.WithDescription("Validate every template and report the first problem"),
	)
	s.server.AddTool(validateTool, s.handleValidate)

	generateTool := mcp.NewTool("generate",
		mcp.WithDescription("Generate random values from a template"),
		mcp.WithString("template",
			mcp.Required(),
			mcp.Description("Template name"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of values to generate (default: 10)"),
		),
		mcp.WithNumber("seed",
			mcp.Description("Seed for reproducible output; omit for a random seed"),
		),
	)
	s.server.AddTool(generateTool, s.handleGenerate)
}

func (s *Server) handleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := s.sess.Canonical()
	if len(list.Templates) == 0 {
		return mcp.NewToolResultText("No templates defined"), nil
	}
	env := scheme.NewEnv(context.Background(), list, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d template(s):\n", len(list.Templates))
	for i, t := range list.Templates {
		status := "ok"
		if problem := t.Validate(env); problem != nil {
			status = problem.Message
		}
		fmt.Fprintf(&b, "%d. %s (%d schemes): %s\n", i+1, t.Name, len(t.Schemes), status)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleValidate(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := s.sess.Canonical()
	if problem := list.Validate(scheme.NewEnv(context.Background(), list, 0)); problem != nil {
		return mcp.NewToolResultError(problem.Message), nil
	}
	return mcp.NewToolResultText("All templates are valid"), nil
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("template")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count := request.GetInt("count", 10)
	if count < 0 || count > maxCount {
		return mcp.NewToolResultError(fmt.Sprintf("count must be between 0 and %d", maxCount)), nil
	}
	seed := uint64(request.GetInt("seed", 0))
	if seed == 0 {
		seed = random.NewRandom().Seed()
	}

	t := s.sess.Canonical().TemplateByName(name)
	if t == nil {
		return mcp.NewToolResultError(fmt.Sprintf("No template named %q", name)), nil
	}
	values, err := s.sess.Generate(ctx, t.UUID, seed, count)
	if err != nil {
		if genErr, ok := scheme.AsGenerationError(err); ok {
			return mcp.NewToolResultError(genErr.Message), nil
		}
		return nil, err
	}
	s.log.Debugw("mcp generate", "template", name, "count", count, "seed", seed)
	return mcp.NewToolResultText(strings.Join(values, "\n")), nil
}
