// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides workflow templates for exploring the collection item of the day

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerTodaysCuriosityPrompt()
	s.registerLookBackPrompt()
}

func (s *Server) registerTodaysCuriosityPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "todays-curiosity",
			Description: "Present today's collection item with its story, location and credit",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleTodaysCuriosity,
	)
}

func (s *Server) handleTodaysCuriosity(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `# Today's Curiosity

## Workflow Steps

### Step 1: Fetch the item
Call **get_today** with mark_viewed=true. If the feed block says degraded,
tell the user the content may be out of date and suggest checking their
connection. If no item is scheduled, say so and offer **list_recent** instead.

### Step 2: Present it
- Lead with the title and the date label
- Retell the summary in a sentence or two
- If there is a fun fact, end with it
- If the item is a Mineral Monday specimen, mention it
- Name the location when one is given
- Always include the attribution line and the collection link

### Step 3: Offer follow-ups
- Add it to favourites with **toggle_favourite**
- Browse the last two weeks with **list_recent**
`

	return &mcp.GetPromptResult{
		Description: "Present today's collection item",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) registerLookBackPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "look-back",
			Description: "Recap recent items and favourites the user may have missed",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "days",
					Description: "Number of days to look back (default: 14)",
					Required:    false,
				},
			},
		},
		s.handleLookBack,
	)
}

func (s *Server) handleLookBack(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	days := fmt.Sprintf("%d", s.engine.HistoryDays())
	if req.Params.Arguments != nil {
		if d, ok := req.Params.Arguments["days"]; ok && d != "" {
			days = d
		}
	}

	template := fmt.Sprintf(`# Look Back Over the Last %s Days

### Step 1: Gather
- Call **list_recent** with days=%s
- Read **curio://favourites** to see what the user already saved

### Step 2: Recap
- Group items by theme using their tags
- Flag any Mineral Monday specimens
- Skip items already in favourites, or note that they are saved

### Step 3: Suggest
- Pick two or three items worth a closer look and say why
- Offer to favourite them with **toggle_favourite**
`, days, days)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Recap of the last %s days", days),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
