// ABOUTME: MCP tool definitions and handlers for feed items and favourites
// ABOUTME: Provides tools to read today's item, browse history, refresh, and track favourites

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/curio/internal/feedsync"
	"github.com/harper/curio/internal/models"
	"github.com/harper/curio/internal/timeutil"
)

// Type definitions for input/output structures

type GetTodayInput struct {
	MarkViewed *bool `json:"mark_viewed,omitempty"`
}

type GetItemForDateInput struct {
	Date string `json:"date"`
}

type ListRecentInput struct {
	Days *int `json:"days,omitempty"`
}

type RefreshFeedInput struct {
	Force *bool `json:"force,omitempty"`
}

type ItemIDInput struct {
	ItemID string `json:"item_id"`
}

type ItemOutput struct {
	ID            string           `json:"id"`
	DisplayDate   string           `json:"display_date"`
	DateLabel     string           `json:"date_label"`
	Title         string           `json:"title"`
	Summary       string           `json:"summary"`
	FunFact       *string          `json:"fun_fact,omitempty"`
	ImageURL      string           `json:"image_url"`
	ThumbnailURL  string           `json:"thumbnail_url"`
	AspectRatio   float64          `json:"aspect_ratio"`
	Attribution   string           `json:"attribution"`
	MuseumURL     string           `json:"museum_url"`
	Location      *models.Location `json:"location,omitempty"`
	Tags          []string         `json:"tags"`
	MineralMonday bool             `json:"mineral_monday"`
	IsFavourite   bool             `json:"is_favourite"`
}

type FeedStatusOutput struct {
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
	Degraded  bool      `json:"degraded"`
	Warning   string    `json:"warning,omitempty"`
}

type ItemResultOutput struct {
	Item ItemOutput       `json:"item"`
	Feed FeedStatusOutput `json:"feed"`
}

type ListItemsOutput struct {
	Items []ItemOutput     `json:"items"`
	Count int              `json:"count"`
	Days  int              `json:"days,omitempty"`
	Feed  FeedStatusOutput `json:"feed"`
}

type RefreshFeedOutput struct {
	Feed      FeedStatusOutput `json:"feed"`
	Version   string           `json:"version"`
	ItemCount int              `json:"item_count"`
}

type FavouriteOutput struct {
	ItemID      string `json:"item_id"`
	IsFavourite bool   `json:"is_favourite"`
}

type ViewedOutput struct {
	ItemID   string    `json:"item_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerGetTodayTool()
	s.registerGetItemForDateTool()
	s.registerListRecentTool()
	s.registerRefreshFeedTool()
	s.registerListFavouritesTool()
	s.registerToggleFavouriteTool()
	s.registerIsFavouriteTool()
	s.registerMarkViewedTool()
}

func (s *Server) registerGetTodayTool() {
	tool := mcp.Tool{
		Name:        "get_today",
		Description: "Get today's curiosity: the collection item scheduled for the current day, or the most recent earlier item if none is scheduled. Served from the local cache when it is less than an hour old. The feed block reports whether the answer came from stale cache because the network was unavailable.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mark_viewed": map[string]interface{}{
					"type":        "boolean",
					"description": "Record the item as viewed (default: false)",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetToday)
}

func (s *Server) registerGetItemForDateTool() {
	tool := mcp.Tool{
		Name:        "get_item_for_date",
		Description: "Get the item shown on a given day. Falls back to the most recent item scheduled before that day. Accepts 'today', 'yesterday', or YYYY-MM-DD.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Day to look up: 'today', 'yesterday', or YYYY-MM-DD. Example: '2026-01-10'",
				},
			},
			Required: []string{"date"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetItemForDate)
}

func (s *Server) registerListRecentTool() {
	tool := mcp.Tool{
		Name:        "list_recent",
		Description: "List items from the last N days including today, newest first. Items scheduled in the future are never included.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"days": map[string]interface{}{
					"type":        "integer",
					"description": "Number of days of history (default: 14)",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListRecent)
}

func (s *Server) registerRefreshFeedTool() {
	tool := mcp.Tool{
		Name:        "refresh_feed",
		Description: "Fetch the feed from the network, replacing the cached copy and refreshing stored item details. Favourites and viewed history are preserved. If the network fails, the cached copy is reported instead.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "Ignore a still-valid cache (default: true)",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRefreshFeed)
}

func (s *Server) registerListFavouritesTool() {
	tool := mcp.Tool{
		Name:        "list_favourites",
		Description: "List favourite items, most recently favourited first. Works offline.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListFavourites)
}

func (s *Server) registerToggleFavouriteTool() {
	tool := mcp.Tool{
		Name:        "toggle_favourite",
		Description: "Flip the favourite flag on an item and return the new state.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "Item ID from get_today or list_recent. Example: 'items/123456'",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleToggleFavourite)
}

func (s *Server) registerIsFavouriteTool() {
	tool := mcp.Tool{
		Name:        "is_favourite",
		Description: "Check whether an item is a favourite. Unknown items are not favourites.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "Item ID to check",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleIsFavourite)
}

func (s *Server) registerMarkViewedTool() {
	tool := mcp.Tool{
		Name:        "mark_viewed",
		Description: "Record that an item was viewed now. Does not change its favourite state.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "Item ID to mark as viewed",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleMarkViewed)
}

// Tool handlers

func (s *Server) handleGetToday(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GetTodayInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	item, result, err := s.engine.ResolveToday(ctx)
	if err != nil {
		return nil, toolError(err)
	}

	if input.MarkViewed != nil && *input.MarkViewed {
		if err := s.favs.MarkAsViewed(item); err != nil {
			return nil, fmt.Errorf("failed to mark viewed: %w", err)
		}
	}

	return jsonResult(ItemResultOutput{Item: s.itemOutput(item), Feed: feedStatus(result)})
}

func (s *Server) handleGetItemForDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GetItemForDateInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	date, ok := timeutil.ParseDay(input.Date, s.now())
	if !ok {
		return nil, fmt.Errorf("cannot parse date %q: use today, yesterday, or YYYY-MM-DD", input.Date)
	}

	result, err := s.engine.FetchFeed(ctx, false)
	if err != nil {
		return nil, toolError(err)
	}

	item, ok := result.Document.ItemForDate(date)
	if !ok {
		return nil, fmt.Errorf("no item scheduled on or before %s", timeutil.FormatDate(date))
	}

	return jsonResult(ItemResultOutput{Item: s.itemOutput(item), Feed: feedStatus(result)})
}

func (s *Server) handleListRecent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListRecentInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	days := s.engine.HistoryDays()
	if input.Days != nil {
		if *input.Days <= 0 {
			return nil, fmt.Errorf("days must be positive, got %d", *input.Days)
		}
		days = *input.Days
	}

	result, err := s.engine.FetchFeed(ctx, false)
	if err != nil {
		return nil, toolError(err)
	}

	items := result.Document.RecentItems(days, s.now())
	outputs := make([]ItemOutput, 0, len(items))
	for _, item := range items {
		outputs = append(outputs, s.itemOutput(item))
	}

	return jsonResult(ListItemsOutput{
		Items: outputs,
		Count: len(outputs),
		Days:  days,
		Feed:  feedStatus(result),
	})
}

func (s *Server) handleRefreshFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RefreshFeedInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	force := true
	if input.Force != nil {
		force = *input.Force
	}

	result, err := s.engine.FetchFeed(ctx, force)
	if err != nil {
		return nil, toolError(err)
	}

	return jsonResult(RefreshFeedOutput{
		Feed:      feedStatus(result),
		Version:   result.Document.Version,
		ItemCount: len(result.Document.Items),
	})
}

func (s *Server) handleListFavourites(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.favs.Favourites()
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}

	outputs := make([]ItemOutput, 0, len(items))
	for _, item := range items {
		output := s.itemOutput(item)
		output.IsFavourite = true
		outputs = append(outputs, output)
	}

	return jsonResult(map[string]interface{}{
		"items": outputs,
		"count": len(outputs),
	})
}

func (s *Server) handleToggleFavourite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, err := s.bindItem(req)
	if err != nil {
		return nil, err
	}

	favourite, err := s.favs.ToggleFavourite(item)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favourite: %w", err)
	}

	return jsonResult(FavouriteOutput{ItemID: item.ID, IsFavourite: favourite})
}

func (s *Server) handleIsFavourite(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ItemIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(input.ItemID) == "" {
		return nil, errors.New("item_id is required")
	}

	return jsonResult(FavouriteOutput{ItemID: input.ItemID, IsFavourite: s.favs.IsFavourite(input.ItemID)})
}

func (s *Server) handleMarkViewed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, err := s.bindItem(req)
	if err != nil {
		return nil, err
	}

	if err := s.favs.MarkAsViewed(item); err != nil {
		return nil, fmt.Errorf("failed to mark viewed: %w", err)
	}

	return jsonResult(ViewedOutput{ItemID: item.ID, ViewedAt: s.now()})
}

// Helpers

// bindItem reads item_id from req and resolves it to an item.
func (s *Server) bindItem(req mcp.CallToolRequest) (models.Item, error) {
	var input ItemIDInput
	if err := req.BindArguments(&input); err != nil {
		return models.Item{}, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(input.ItemID) == "" {
		return models.Item{}, errors.New("item_id is required")
	}

	item, err := s.engine.FindItem(input.ItemID)
	if err != nil {
		return models.Item{}, fmt.Errorf("item not found: %s: %w", input.ItemID, err)
	}
	return item, nil
}

func (s *Server) itemOutput(item models.Item) ItemOutput {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return ItemOutput{
		ID:            item.ID,
		DisplayDate:   item.DisplayDate,
		DateLabel:     item.DisplayDateLabel(s.now()),
		Title:         item.Title,
		Summary:       item.Summary,
		FunFact:       item.FunFact,
		ImageURL:      item.ImageURL,
		ThumbnailURL:  item.ThumbnailURL,
		AspectRatio:   item.Ratio(),
		Attribution:   item.AttributionText(),
		MuseumURL:     item.MuseumURL,
		Location:      item.Location,
		Tags:          tags,
		MineralMonday: item.IsMineralMonday(),
		IsFavourite:   s.favs.IsFavourite(item.ID),
	}
}

func feedStatus(result *feedsync.FetchResult) FeedStatusOutput {
	out := FeedStatusOutput{
		Source:    string(result.Source),
		FetchedAt: result.FetchedAt,
		Degraded:  result.Degraded(),
	}
	if result.Warning != nil {
		out.Warning = feedsync.Message(result.Warning)
	}
	return out
}

// toolError turns an engine error into its user-facing message while
// keeping the cause for errors.Is.
func toolError(err error) error {
	return fmt.Errorf("%s: %w", feedsync.Message(err), err)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
