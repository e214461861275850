package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for foodshare resources.
	uriScheme = "foodshare://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "claims",
		Name:        "claims",
		Description: "Number of claims per claim status",
		MIMEType:    mimeJSON,
	}, s.handleClaimsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "total",
		Name:        "total",
		Description: "Total quantity of food available across all listings",
		MIMEType:    mimeJSON,
	}, s.handleTotalResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "cities/{city}/receivers",
		Name:        "city-receivers",
		Description: "Receivers in a city",
		MIMEType:    mimeJSON,
	}, s.handleReceiversResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "cities/{city}/providers",
		Name:        "city-providers",
		Description: "Provider contacts in a city",
		MIMEType:    mimeJSON,
	}, s.handleProvidersResource)
}

// handleClaimsResource returns the claims distribution.
func (s *Server) handleClaimsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	t, err := s.ports.Query.ClaimsDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading claims: %w", err)
	}
	return jsonResult(req.Params.URI, domain.ClaimCounts(t))
}

// handleTotalResource returns the total quantity.
func (s *Server) handleTotalResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	t, err := s.ports.Query.TotalQuantity(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading total quantity: %w", err)
	}
	var total int64
	if v, ok := t.Value(0, "Total_Quantity"); ok {
		total, _ = domain.Int64(v)
	}
	return jsonResult(req.Params.URI, map[string]int64{"total_quantity": total})
}

// handleReceiversResource returns receivers for the city in the URI.
func (s *Server) handleReceiversResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	city := extractCity(req.Params.URI, "receivers")
	if city == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	t, err := s.ports.Query.ReceiversByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("reading receivers: %w", err)
	}
	return jsonResult(req.Params.URI, t.Records())
}

// handleProvidersResource returns provider contacts for the city in the URI.
func (s *Server) handleProvidersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	city := extractCity(req.Params.URI, "providers")
	if city == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	t, err := s.ports.Query.ProviderContacts(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("reading provider contacts: %w", err)
	}
	return jsonResult(req.Params.URI, t.Records())
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractCity extracts the city from a URI like foodshare://cities/{city}/{kind}.
// The city is path-unescaped, so "New%20York" reads as "New York".
func extractCity(uri, kind string) string {
	const prefix = uriScheme + "cities/"
	suffix := "/" + kind

	if len(uri) <= len(prefix)+len(suffix) ||
		!strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}
	raw := uri[len(prefix) : len(uri)-len(suffix)]
	if strings.Contains(raw, "/") {
		return ""
	}
	city, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return city
}
