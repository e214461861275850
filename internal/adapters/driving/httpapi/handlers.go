package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// listingRequest is the body of POST /api/v1/listings.
type listingRequest struct {
	FoodName         string `json:"food_name"`
	Quantity         int    `json:"quantity"`
	ExpiryDate       string `json:"expiry_date"`
	ProviderID       int64  `json:"provider_id"`
	ProviderName     string `json:"provider_name"`
	ProviderLocation string `json:"provider_location"`
	FoodType         string `json:"food_type"`
	MealType         string `json:"meal_type"`
}

// listingResponse is a listing as returned after insert.
type listingResponse struct {
	FoodID           int64  `json:"food_id"`
	FoodName         string `json:"food_name"`
	Quantity         int    `json:"quantity"`
	ExpiryDate       string `json:"expiry_date"`
	ProviderID       int64  `json:"provider_id"`
	ProviderName     string `json:"provider_name"`
	ProviderLocation string `json:"provider_location"`
	FoodType         string `json:"food_type"`
	MealType         string `json:"meal_type"`
}

type optionsResponse struct {
	Options       *domain.FilterOptions `json:"options"`
	DefaultFilter domain.Filter         `json:"default_filter"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) options(c *gin.Context) {
	opts, def, err := s.ports.Dashboard.Options(c.Request.Context())
	if err != nil {
		failWith(c, err, "Error while loading filter options")
		return
	}
	success(c, http.StatusOK, optionsResponse{Options: opts, DefaultFilter: def}, "")
}

func (s *Server) dashboard(c *gin.Context) {
	filter, err := s.filterFrom(c)
	if err != nil {
		failWith(c, err, "Error while loading filter options")
		return
	}

	d, err := s.ports.Dashboard.Refresh(c.Request.Context(), filter)
	if err != nil {
		failWith(c, err, "Error while refreshing the dashboard")
		return
	}
	success(c, http.StatusOK, d, "")
}

func (s *Server) view(c *gin.Context) {
	view, err := domain.ParseView(c.Param("view"))
	if err != nil {
		fail(c, http.StatusNotFound, err, "Unknown view "+c.Param("view"))
		return
	}

	filter, err := s.filterFrom(c)
	if err != nil {
		failWith(c, err, "Error while loading filter options")
		return
	}

	t, err := s.ports.Query.View(c.Request.Context(), view, filter)
	if err != nil {
		failWith(c, err, "Error while running "+view.String())
		return
	}
	success(c, http.StatusOK, gin.H{"view": view, "filter": filter, "table": t}, "")
}

func (s *Server) providerIDs(c *gin.Context) {
	ids, err := s.ports.Query.ProviderIDs(c.Request.Context())
	if err != nil {
		failWith(c, err, "Error while loading provider IDs")
		return
	}
	success(c, http.StatusOK, gin.H{"provider_ids": ids}, "")
}

func (s *Server) addListing(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	expiry, err := domain.ParseExpiryDate(req.ExpiryDate)
	if err != nil {
		failWith(c, err, "Invalid listing")
		return
	}
	listing := domain.FoodListing{
		FoodName:         req.FoodName,
		Quantity:         req.Quantity,
		ExpiryDate:       expiry,
		ProviderID:       req.ProviderID,
		ProviderName:     req.ProviderName,
		ProviderLocation: req.ProviderLocation,
		FoodType:         req.FoodType,
		MealType:         req.MealType,
	}

	ctx := c.Request.Context()
	known, err := s.ports.Query.ProviderIDs(ctx)
	if err != nil {
		failWith(c, err, "Error while loading provider IDs")
		return
	}
	if err := listing.CheckProvider(known); err != nil {
		failWith(c, err, "Invalid listing")
		return
	}

	added, err := s.ports.Dashboard.Submit(ctx, listing)
	if err != nil {
		failWith(c, err, "Error while adding the listing")
		return
	}

	success(c, http.StatusCreated, listingResponse{
		FoodID:           added.ID,
		FoodName:         added.FoodName,
		Quantity:         added.Quantity,
		ExpiryDate:       added.ExpiryString(),
		ProviderID:       added.ProviderID,
		ProviderName:     added.ProviderName,
		ProviderLocation: added.ProviderLocation,
		FoodType:         added.FoodType,
		MealType:         added.MealType,
	}, "Listing added successfully")
}

// filterFrom reads city, provider and food_type from the query string.
// A missing city or food type takes the dashboard default.
func (s *Server) filterFrom(c *gin.Context) (domain.Filter, error) {
	filter := domain.Filter{
		City:     c.Query("city"),
		Provider: c.Query("provider"),
		FoodType: c.Query("food_type"),
	}
	if filter.City != "" && filter.FoodType != "" {
		return filter, nil
	}

	_, def, err := s.ports.Dashboard.Options(c.Request.Context())
	if err != nil {
		return domain.Filter{}, err
	}
	if filter.City == "" {
		filter.City = def.City
	}
	if filter.FoodType == "" {
		filter.FoodType = def.FoodType
	}
	return filter, nil
}
