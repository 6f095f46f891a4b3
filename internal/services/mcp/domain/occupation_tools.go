package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names exposed to MCP clients.
const (
	SearchOccupationToolName  = "search_occupation"
	OccupationDetailsToolName = "get_occupation_details"
)

// errMissingArgument is reported as a tool error when a required argument is blank.
var errMissingArgument = errors.New("Arguments requis")

// toolFailurePrefix introduces the text returned when a tool call faults.
const toolFailurePrefix = "Erreur lors de l'exécution de l'outil : "

// SearchOccupationInput represents the MCP tool input for keyword searches.
type SearchOccupationInput struct {
	Keyword string `json:"keyword" jsonschema:"Mot-clé du métier"`
}

// OccupationDetailsInput represents the MCP tool input for full reports.
type OccupationDetailsInput struct {
	SocCode string `json:"soc_code" jsonschema:"Le code SOC (Ex: 15-1132.00)"`
}

// SearchOccupationTool defines the MCP tool schema for keyword searches.
func SearchOccupationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        SearchOccupationToolName,
		Description: "Recherche un métier par mot-clé (Ex: Data Scientist). Retourne les codes SOC.",
	}
}

// OccupationDetailsTool defines the MCP tool schema for full reports.
func OccupationDetailsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        OccupationDetailsToolName,
		Description: "Récupère le rapport complet (Tâches, Skills, Education) via le code SOC.",
	}
}

// SearchOccupationHandler executes a keyword search.
func SearchOccupationHandler(catalog Catalog) mcp.ToolHandlerFor[SearchOccupationInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchOccupationInput) (res *mcp.CallToolResult, out any, err error) {
		defer recoverToolFault(&res, &err)
		keyword := strings.TrimSpace(input.Keyword)
		if keyword == "" {
			return nil, nil, errMissingArgument
		}
		return textResult(SearchOccupation(ctx, catalog, keyword)), nil, nil
	}
}

// OccupationDetailsHandler builds the full occupation report.
func OccupationDetailsHandler(catalog Catalog) mcp.ToolHandlerFor[OccupationDetailsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OccupationDetailsInput) (res *mcp.CallToolResult, out any, err error) {
		defer recoverToolFault(&res, &err)
		if CleanCode(input.SocCode) == "" {
			return nil, nil, errMissingArgument
		}
		return textResult(OccupationDetails(ctx, catalog, input.SocCode)), nil, nil
	}
}

// recoverToolFault turns a panic raised while serving a tool call into a
// text result so the fault stays inside the call.
func recoverToolFault(res **mcp.CallToolResult, err *error) {
	if r := recover(); r != nil {
		*res = textResult(fmt.Sprintf("%s%v", toolFailurePrefix, r))
		*err = nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
