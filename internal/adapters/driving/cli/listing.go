package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

var listingAddFlags struct {
	foodName         string
	quantity         int
	expiry           string
	providerID       int64
	providerName     string
	providerLocation string
	foodType         string
	mealType         string
	json             bool
}

var listingCmd = &cobra.Command{
	Use:   "listing",
	Short: "Manage food listings",
}

var listingAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food listing",
	Long: `Add one food listing offered for donation.

The provider ID must belong to a known provider and the quantity must be
at least 1. Submitting the same listing twice creates two listings.

Example:
  foodshare listing add --name Rice --quantity 5 --expiry 2026-03-15 \
    --provider-id 1 --provider-name "Acme Foods" --location Springfield \
    --type Vegan --meal Dinner`,
	RunE: runListingAdd,
}

func init() {
	f := listingAddCmd.Flags()
	f.StringVar(&listingAddFlags.foodName, "name", "", "food name")
	f.IntVarP(&listingAddFlags.quantity, "quantity", "q", 0, "number of units (at least 1)")
	f.StringVarP(&listingAddFlags.expiry, "expiry", "e", "", "expiry date (YYYY-MM-DD)")
	f.Int64Var(&listingAddFlags.providerID, "provider-id", 0, "ID of a known provider")
	f.StringVar(&listingAddFlags.providerName, "provider-name", "", "provider display name")
	f.StringVarP(&listingAddFlags.providerLocation, "location", "l", "", "city the food is available in")
	f.StringVarP(&listingAddFlags.foodType, "type", "t", "", "food type, e.g. Vegetarian")
	f.StringVarP(&listingAddFlags.mealType, "meal", "m", "", "meal type, e.g. Dinner")
	f.BoolVar(&listingAddFlags.json, "json", false, "output the added listing as JSON")

	_ = listingAddCmd.MarkFlagRequired("quantity")
	_ = listingAddCmd.MarkFlagRequired("expiry")
	_ = listingAddCmd.MarkFlagRequired("provider-id")

	listingCmd.AddCommand(listingAddCmd)
	rootCmd.AddCommand(listingCmd)
}

func runListingAdd(cmd *cobra.Command, _ []string) error {
	if err := requireDashboard(); err != nil {
		return err
	}
	if err := requireQuery(); err != nil {
		return err
	}
	ctx := cmd.Context()

	expiry, err := domain.ParseExpiryDate(listingAddFlags.expiry)
	if err != nil {
		return err
	}
	listing := domain.FoodListing{
		FoodName:         listingAddFlags.foodName,
		Quantity:         listingAddFlags.quantity,
		ExpiryDate:       expiry,
		ProviderID:       listingAddFlags.providerID,
		ProviderName:     listingAddFlags.providerName,
		ProviderLocation: listingAddFlags.providerLocation,
		FoodType:         listingAddFlags.foodType,
		MealType:         listingAddFlags.mealType,
	}

	known, err := queryService.ProviderIDs(ctx)
	if err != nil {
		return fmt.Errorf("loading provider IDs: %w", err)
	}
	if err := listing.CheckProvider(known); err != nil {
		return err
	}

	added, err := dashboardService.Submit(ctx, listing)
	if err != nil {
		return fmt.Errorf("adding listing: %w", err)
	}

	if listingAddFlags.json {
		return outputJSON(cmd, map[string]any{
			"food_id":           added.ID,
			"food_name":         added.FoodName,
			"quantity":          added.Quantity,
			"expiry_date":       added.ExpiryString(),
			"provider_id":       added.ProviderID,
			"provider_name":     added.ProviderName,
			"provider_location": added.ProviderLocation,
			"food_type":         added.FoodType,
			"meal_type":         added.MealType,
		})
	}

	cmd.Printf("Listing %d added: %s (%d, expires %s)\n",
		added.ID, added.FoodName, added.Quantity, added.ExpiryString())
	return nil
}
