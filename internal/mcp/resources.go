// ABOUTME: MCP resource providers for curio
// ABOUTME: Exposes read-only views of today's item, favourites, and sync status

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/curio/internal/feedsync"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     interface{}       `json:"data"`
	Links    map[string]string `json:"links"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Count       int       `json:"count"`
	ResourceURI string    `json:"resource_uri"`
}

// StatusOutput is the curio://status payload.
type StatusOutput struct {
	Loading        bool       `json:"loading"`
	LastError      string     `json:"last_error,omitempty"`
	HasCache       bool       `json:"has_cache"`
	CacheFetchedAt *time.Time `json:"cache_fetched_at,omitempty"`
	CacheValid     bool       `json:"cache_valid"`
	CacheItems     int        `json:"cache_items"`
	CacheVersion   string     `json:"cache_version,omitempty"`
	Favourites     int        `json:"favourites"`
}

const (
	todayURI      = "curio://today"
	favouritesURI = "curio://favourites"
	statusURI     = "curio://status"
)

var resourceLinks = map[string]string{
	"today":      todayURI,
	"favourites": favouritesURI,
	"status":     statusURI,
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         todayURI,
			Name:        "Today's Curiosity",
			Description: "The item scheduled for today, or the most recent earlier item",
			MIMEType:    "application/json",
		},
		s.readToday,
	)

	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         favouritesURI,
			Name:        "Favourites",
			Description: "Favourite items, most recently favourited first",
			MIMEType:    "application/json",
		},
		s.readFavourites,
	)

	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         statusURI,
			Name:        "Sync Status",
			Description: "Cache age and validity, the last fetch error, and favourite count",
			MIMEType:    "application/json",
		},
		s.readStatus,
	)
}

func (s *Server) readToday(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	item, result, err := s.engine.ResolveToday(ctx)
	if err != nil {
		return nil, toolError(err)
	}

	return s.resourceContents(request, ItemResultOutput{Item: s.itemOutput(item), Feed: feedStatus(result)}, 1)
}

func (s *Server) readFavourites(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
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

	return s.resourceContents(request, outputs, len(outputs))
}

func (s *Server) readStatus(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	status := s.engine.Status()

	records, err := s.favs.FavouriteRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to count favourites: %w", err)
	}

	output := StatusOutput{
		Loading:      status.Loading,
		HasCache:     status.HasCache,
		CacheValid:   status.CacheValid,
		CacheItems:   status.CacheItems,
		CacheVersion: status.CacheVersion,
		Favourites:   len(records),
	}
	if status.LastError != nil {
		output.LastError = feedsync.Message(status.LastError)
	}
	if status.HasCache {
		fetchedAt := status.CacheFetchedAt
		output.CacheFetchedAt = &fetchedAt
	}

	return s.resourceContents(request, output, 1)
}

func (s *Server) resourceContents(request mcp.ReadResourceRequest, data interface{}, count int) ([]mcp.ResourceContents, error) {
	resourceData := ResourceData{
		Metadata: ResourceMetadata{
			Timestamp:   s.now(),
			Count:       count,
			ResourceURI: request.Params.URI,
		},
		Data:  data,
		Links: resourceLinks,
	}

	jsonBytes, err := json.MarshalIndent(resourceData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
