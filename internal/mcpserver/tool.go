package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ziggle-dev/clanker-input/internal/request"
)

// ToolName is the name of the input tool.
const ToolName = "user_input"

func userInputTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Ask the user for input through a native dialog, falling back to the terminal. "+
			"Pass prompt for one answer, or questions for several answers keyed by question."),
		mcp.WithString("prompt",
			mcp.Description("The question to show the user"),
		),
		mcp.WithString("default_value",
			mcp.Description("Pre-filled answer; ignored for password input"),
		),
		mcp.WithString("title",
			mcp.Description("Dialog title (default \"Input Required\")"),
		),
		mcp.WithBoolean("password",
			mcp.Description("Mask the input; the answer is never echoed in output"),
		),
		mcp.WithString("type",
			mcp.Description("Kind of input"),
			mcp.Enum("text", "password", "dropdown"),
		),
		mcp.WithArray("options",
			mcp.Description("Choices for dropdown input"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("questions",
			mcp.Description("Questions to ask in order; takes precedence over prompt"),
			mcp.Items(request.QuestionSchema()),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Treat no answer within this many seconds as cancellation"),
			mcp.Min(0),
		),
	)
}

// handleUserInput decodes the arguments and asks. Calls are serialized so
// two dialogs never compete for the user.
func (s *Server) handleUserInput(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp request.Response
	in, err := request.Decode(req.GetArguments())
	if err != nil {
		resp = request.Response{
			Error:  fmt.Sprintf("%s: %v", request.FailedPrefix, err),
			Status: request.StatusFailed,
		}
	} else {
		s.mu.Lock()
		resp = s.asker.Ask(ctx, in)
		s.mu.Unlock()
	}

	out, err := resp.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	result := mcp.NewToolResultText(string(out))
	result.IsError = resp.Status == request.StatusFailed
	return result, nil
}
