package service

import (
	"fmt"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const mcpOccupationToolsModuleName = "occupation-tools"

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

// mcpRegistrationTarget is the subset of the MCP server used by registration modules.
type mcpRegistrationTarget interface {
	AddTool(tool *mcp.Tool, handler any) error
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

// mcpToolRegistrar recovers the typed handler so mcp.AddTool can infer the
// input schema from I.
type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.SearchOccupationInput, any](),
	newMCPToolRegistrar[domain.OccupationDetailsInput, any](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(catalog domain.Catalog) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpOccupationToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerOccupationTools(registrar, catalog)
			},
		},
	}
}

func registerOccupationTools(registrar mcpRegistrationTarget, catalog domain.Catalog) error {
	if err := registrar.AddTool(domain.SearchOccupationTool(), domain.SearchOccupationHandler(catalog)); err != nil {
		return err
	}
	return registrar.AddTool(domain.OccupationDetailsTool(), domain.OccupationDetailsHandler(catalog))
}

func registerModules(target mcpRegistrationTarget, modules []mcpRegistrationModule) error {
	for _, module := range modules {
		if err := module.register(target); err != nil {
			return fmt.Errorf("register %s: %w", module.name, err)
		}
	}
	return nil
}
