// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/workbench/core"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Workbench MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(dogs *core.DogService, defects *core.DefectService) *server.MCPServer {
	s := server.NewMCPServer(
		"Workbench Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		dogs:    dogs,
		defects: defects,
	}

	// --- 1. Tool: list_dogs ---
	s.AddTool(mcp.NewTool("list_dogs",
		mcp.WithDescription("List dogs, optionally filtered by name and sorted by any field."),
		mcp.WithString("name", mcp.Description("Case-insensitive substring the dog name must contain.")),
		mcp.WithString("sort", mcp.Description("Field to sort by (id, name, breed, age, weight, intakeDate).")),
		mcp.WithString("order", mcp.Description("Sort direction. Defaults to 'asc'."), mcp.Enum("asc", "desc")),
	), h.handleListDogs)

	// --- 2. Tool: get_dog ---
	s.AddTool(mcp.NewTool("get_dog",
		mcp.WithDescription("Get a single dog by id."),
		mcp.WithString("id", mcp.Description("The dog id."), mcp.Required()),
	), h.handleGetDog)

	// --- 3. Tool: create_dog ---
	s.AddTool(mcp.NewTool("create_dog",
		mcp.WithDescription("Create a dog. Every field is required."),
		mcp.WithString("name", mcp.Description("Dog name."), mcp.Required()),
		mcp.WithString("breed", mcp.Description("Dog breed."), mcp.Required()),
		mcp.WithNumber("age", mcp.Description("Age in years."), mcp.Required()),
		mcp.WithNumber("weight", mcp.Description("Weight in kilograms."), mcp.Required()),
		mcp.WithString("intakeDate", mcp.Description("Intake date (e.g., '2024-01-31')."), mcp.Required()),
	), h.handleCreateDog)

	// --- 4. Tool: update_dog ---
	s.AddTool(mcp.NewTool("update_dog",
		mcp.WithDescription("Partially update a dog. Only the supplied fields change."),
		mcp.WithString("id", mcp.Description("The dog id."), mcp.Required()),
		mcp.WithString("name", mcp.Description("Dog name.")),
		mcp.WithString("breed", mcp.Description("Dog breed.")),
		mcp.WithNumber("age", mcp.Description("Age in years.")),
		mcp.WithNumber("weight", mcp.Description("Weight in kilograms.")),
		mcp.WithString("intakeDate", mcp.Description("Intake date.")),
	), h.handleUpdateDog)

	// --- 5. Tool: delete_dog ---
	s.AddTool(mcp.NewTool("delete_dog",
		mcp.WithDescription("Delete a dog by id and return the removed record."),
		mcp.WithString("id", mcp.Description("The dog id."), mcp.Required()),
	), h.handleDeleteDog)

	// --- 6. Tool: aggregate_defects ---
	s.AddTool(mcp.NewTool("aggregate_defects",
		mcp.WithDescription("Aggregate defect reports per company with OK and error percentages."),
	), h.handleAggregateDefects)

	return s
}

// StartMCPServer starts the Workbench MCP server over stdio.
func StartMCPServer(_ context.Context, dogs *core.DogService, defects *core.DefectService) error {
	s := NewMCPServer(dogs, defects)
	return server.ServeStdio(s)
}
