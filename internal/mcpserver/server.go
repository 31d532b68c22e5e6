// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the note store to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/pocketnotes/internal/models"
	"github.com/starford/pocketnotes/internal/noteservice"
)

// Server wraps the MCP server with note tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all note tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Pocketnotes",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes, newest first, with title, preview line and date."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full text of a note."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Note filename as returned by list_notes")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note. The first line becomes its title. Returns the generated filename."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Plain text of the note")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("save_note",
		mcp.WithDescription("Replace the text of an existing note and move it to the top of the list. "+
			"Empty content deletes the note."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Note filename")),
		mcp.WithString("content", mcp.Description("New plain text; empty deletes the note")),
	), s.saveNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note. Deleting a missing note is not an error."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Note filename")),
	), s.deleteNote)

	s.mcp.AddResource(
		mcp.NewResource(LayoutURI, "Note Layout",
			mcp.WithResourceDescription("How notes are named, stored and ordered."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLayoutResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func listResult(list []models.NoteSummary) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listNotes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return listResult(s.svc.List(ctx)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := s.svc.Read(ctx, filename)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read %s: %v", filename, err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if content == "" {
		return mcp.NewToolResultError("content must not be empty"), nil
	}
	filename, _, err := s.svc.Create(ctx, content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", filename)), nil
}

func (s *Server) saveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.svc.Save(ctx, filename, req.GetString("content", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return listResult(list), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.svc.Delete(ctx, filename)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return listResult(list), nil
}

func (s *Server) readLayoutResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      LayoutURI,
			MIMEType: "text/markdown",
			Text:     NoteLayout,
		},
	}, nil
}
