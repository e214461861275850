package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

// viewFlags are the filter flags shared by the read commands.
type viewFlags struct {
	city     string
	provider string
	foodType string
	json     bool
}

var (
	optionsJSON    bool
	totalFlags     viewFlags
	contactsFlags  viewFlags
	listingsFlags  viewFlags
	claimsFlags    viewFlags
	receiversFlags viewFlags
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the cities, providers and food types to filter by",
	RunE:  runOptions,
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show the total quantity of food available",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runView(cmd, domain.ViewTotalQuantity, &totalFlags)
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Show provider contacts in a city",
	Long: `Show the name and contact of every provider in a city.
Without --city the first known city is used.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runView(cmd, domain.ViewProviderContacts, &contactsFlags)
	},
}

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Show food listings for a city and food type",
	Long: `Show listings whose location and food type match exactly.
Without --city or --type the first known value is used.
--provider narrows the result to one provider.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runView(cmd, domain.ViewFilteredListings, &listingsFlags)
	},
}

var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "Show the number of claims per status",
	RunE:  runClaims,
}

var receiversCmd = &cobra.Command{
	Use:   "receivers",
	Short: "Show receivers in a city",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runView(cmd, domain.ViewReceiversByCity, &receiversFlags)
	},
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "output as JSON")

	totalCmd.Flags().BoolVar(&totalFlags.json, "json", false, "output as JSON")
	claimsCmd.Flags().BoolVar(&claimsFlags.json, "json", false, "output as JSON")

	addFilterFlags(contactsCmd, &contactsFlags, false, false)
	addFilterFlags(listingsCmd, &listingsFlags, true, true)
	addFilterFlags(receiversCmd, &receiversFlags, false, false)

	rootCmd.AddCommand(optionsCmd, totalCmd, contactsCmd, listingsCmd, claimsCmd, receiversCmd)
}

func addFilterFlags(cmd *cobra.Command, f *viewFlags, foodType, provider bool) {
	cmd.Flags().StringVarP(&f.city, "city", "c", "", "city to filter by")
	if foodType {
		cmd.Flags().StringVarP(&f.foodType, "type", "t", "", "food type to filter by")
	}
	if provider {
		cmd.Flags().StringVarP(&f.provider, "provider", "p", "", "provider name (default any)")
	}
	cmd.Flags().BoolVar(&f.json, "json", false, "output as JSON")
}

func runOptions(cmd *cobra.Command, _ []string) error {
	if err := requireDashboard(); err != nil {
		return err
	}

	opts, def, err := dashboardService.Options(cmd.Context())
	if err != nil {
		return err
	}

	if optionsJSON {
		return outputJSON(cmd, map[string]any{
			"options":        opts,
			"default_filter": def,
		})
	}

	printOptions(cmd, "Cities", opts.Cities, def.City)
	printOptions(cmd, "Providers", opts.Providers, "")
	printOptions(cmd, "Food types", opts.FoodTypes, def.FoodType)
	return nil
}

func printOptions(cmd *cobra.Command, label string, values []string, def string) {
	cmd.Printf("%s:\n", label)
	if len(values) == 0 {
		cmd.Println("  (none)")
	}
	for _, v := range values {
		marker := " "
		if v == def {
			marker = "*"
		}
		cmd.Printf(" %s %s\n", marker, v)
	}
	cmd.Println()
}

func runView(cmd *cobra.Command, view domain.View, f *viewFlags) error {
	if err := requireQuery(); err != nil {
		return err
	}
	ctx := cmd.Context()

	filter, err := resolveFilter(ctx, f)
	if err != nil {
		return err
	}

	t, err := queryService.View(ctx, view, filter)
	if err != nil {
		return fmt.Errorf("running %s: %w", view, err)
	}

	if f.json {
		if view == domain.ViewTotalQuantity {
			return outputJSON(cmd, map[string]int64{"total_quantity": totalOf(t)})
		}
		return outputJSON(cmd, t.Records())
	}

	if view == domain.ViewTotalQuantity {
		cmd.Printf("Total quantity available: %d\n", totalOf(t))
		return nil
	}

	cmd.Println(view.Title() + describeFilter(view, filter))
	outputTable(cmd, t)
	return nil
}

func runClaims(cmd *cobra.Command, _ []string) error {
	if err := requireQuery(); err != nil {
		return err
	}

	t, err := queryService.ClaimsDistribution(cmd.Context())
	if err != nil {
		return fmt.Errorf("running %s: %w", domain.ViewClaimsDistribution, err)
	}
	counts := domain.ClaimCounts(t)

	if claimsFlags.json {
		return outputJSON(cmd, counts)
	}

	cmd.Println(domain.ViewClaimsDistribution.Title())
	if len(counts) == 0 {
		cmd.Println("No claims.")
		return nil
	}
	var peak int64
	for _, c := range counts {
		peak = max(peak, c.Count)
	}
	for _, c := range counts {
		cmd.Printf("  %-10s %s %d\n", c.Status, bar(c.Count, peak, 30), c.Count)
	}
	return nil
}

// resolveFilter fills an unset city or food type from the dashboard defaults.
func resolveFilter(ctx context.Context, f *viewFlags) (domain.Filter, error) {
	filter := domain.Filter{City: f.city, Provider: f.provider, FoodType: f.foodType}
	if filter.City != "" && filter.FoodType != "" {
		return filter, nil
	}
	if dashboardService == nil {
		return filter, nil
	}

	_, def, err := dashboardService.Options(ctx)
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

func describeFilter(view domain.View, f domain.Filter) string {
	switch view {
	case domain.ViewProviderContacts, domain.ViewReceiversByCity:
		return fmt.Sprintf(" (%s)", f.City)
	case domain.ViewFilteredListings:
		parts := []string{f.City, f.FoodType}
		if f.Provider != "" {
			parts = append(parts, f.Provider)
		}
		return fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
	default:
		return ""
	}
}

func totalOf(t *domain.Table) int64 {
	v, ok := t.Value(0, "Total_Quantity")
	if !ok {
		return 0
	}
	n, _ := domain.Int64(v)
	return n
}

func bar(n, peak int64, width int) string {
	if peak <= 0 {
		return ""
	}
	return strings.Repeat("█", int(n*int64(width)/peak))
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputTable(cmd *cobra.Command, t *domain.Table) {
	if t.IsEmpty() {
		cmd.Println("No matching rows.")
		return
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Columns...).
		Rows(t.StringRows()...)
	cmd.Println(tbl.String())
	cmd.Printf("%d rows\n", t.Len())
}
