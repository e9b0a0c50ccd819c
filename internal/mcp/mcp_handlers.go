package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/workbench/core"
	"github.com/huangsam/workbench/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	dogs    *core.DogService
	defects *core.DefectService
}

func (h *toolHandler) handleListDogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := schema.ListQuery{
		Name:  request.GetString("name", ""),
		Sort:  request.GetString("sort", ""),
		Order: schema.ParseSortOrder(request.GetString("order", "")),
	}
	dogs, err := h.dogs.List(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if dogs == nil {
		dogs = []schema.Dog{}
	}
	return jsonResult(dogs), nil
}

func (h *toolHandler) handleGetDog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := core.ParseDogID(idArgument(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dog, err := h.dogs.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(dog), nil
}

func (h *toolHandler) handleCreateDog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fields, err := fieldsArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dog, err := h.dogs.Create(ctx, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(dog), nil
}

func (h *toolHandler) handleUpdateDog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := core.ParseDogID(idArgument(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields, err := fieldsArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dog, err := h.dogs.Update(ctx, id, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(dog), nil
}

func (h *toolHandler) handleDeleteDog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := core.ParseDogID(idArgument(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dog, err := h.dogs.Delete(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(schema.DeletedDog{Deleted: dog}), nil
}

func (h *toolHandler) handleAggregateDefects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.defects.Aggregate(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

// idArgument accepts the id as a string or a number.
func idArgument(request mcp.CallToolRequest) string {
	switch v := request.GetArguments()["id"].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// fieldsArgument decodes the tool arguments with the same rules as a request body.
func fieldsArgument(request mcp.CallToolRequest) (schema.DogFields, error) {
	var fields schema.DogFields
	args := request.GetArguments()
	if args == nil {
		return fields, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return fields, err
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fields, err
	}
	return fields, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}
