// internal/server/server.go
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"diet-manager/internal/app"
)

const maxRequestSize = 1 << 20

type toolHandler func(*protocol.CallToolRequest) (*protocol.CallToolResult, error)

// DietServer answers tool calls read from a stream, one JSON request per
// line, with one JSON result per line. It never opens a network listener.
type DietServer struct {
	// mu serializes tool calls and saves against the shared session.
	mu      sync.Mutex
	session *app.Session
	tools   map[string]toolHandler
	mutates map[string]bool
}

func NewDietServer(session *app.Session) *DietServer {
	s := &DietServer{session: session}
	s.registerTools()
	return s
}

// errorResponse is written in place of a result when a call fails.
type errorResponse struct {
	Error string `json:"error"`
}

// Serve processes requests from in until it is exhausted or ctx is done.
func (s *DietServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		result, err := s.HandleLine(line)
		if err != nil {
			slog.Warn("tool call failed", "error", err)
			if encErr := enc.Encode(errorResponse{Error: err.Error()}); encErr != nil {
				return fmt.Errorf("failed to write response: %w", encErr)
			}
			continue
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	return scanner.Err()
}

// HandleLine decodes one request and routes it to its tool.
func (s *DietServer) HandleLine(line []byte) (*protocol.CallToolResult, error) {
	var request protocol.CallToolRequest
	if err := json.Unmarshal(line, &request); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return s.Call(&request)
}

// Call runs a tool and saves the session after any tool that changes state.
func (s *DietServer) Call(request *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	handler, ok := s.tools[request.Name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", request.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := handler(request)
	if err != nil {
		return nil, err
	}

	if s.mutates[request.Name] {
		if err := s.session.Save(); err != nil {
			slog.Error("failed to save after tool call", "tool", request.Name, "error", err)
		}
	}
	return result, nil
}

// Save writes the session once any tool call in progress has finished.
func (s *DietServer) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Save()
}

func (s *DietServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
