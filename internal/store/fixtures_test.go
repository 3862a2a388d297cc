package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/erazemk/foodshare/internal/model"
)

type fixture struct {
	bakery, market     *model.Provider
	shelter, foodbank  *model.Receiver
	rice, bread, curry *model.Listing
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newFixture creates two providers, two receivers and three listings.
func newFixture(t *testing.T, database *sql.DB) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{}
	var err error

	f.bakery, err = CreateProvider(ctx, database, model.Provider{Name: "Sunrise Bakery", Type: "Restaurant", City: "Delhi", Contact: "111"})
	require.NoError(t, err)
	f.market, err = CreateProvider(ctx, database, model.Provider{Name: "Green Market", Type: "Grocery Store", City: "Mumbai", Contact: "222"})
	require.NoError(t, err)

	f.shelter, err = CreateReceiver(ctx, database, model.Receiver{Name: "City Shelter", Type: "Shelter", City: "Delhi"})
	require.NoError(t, err)
	f.foodbank, err = CreateReceiver(ctx, database, model.Receiver{Name: "Food Bank", Type: "NGO", City: "Mumbai"})
	require.NoError(t, err)

	f.rice, err = CreateListing(ctx, database, model.Listing{
		FoodName: "Rice", Quantity: 50, ExpiryDate: date(2025, time.March, 10),
		ProviderID: f.bakery.ID, Location: "Delhi", FoodType: "Vegetarian", MealType: "Lunch",
	})
	require.NoError(t, err)
	f.bread, err = CreateListing(ctx, database, model.Listing{
		FoodName: "Bread", Quantity: 10, ExpiryDate: date(2025, time.March, 3),
		ProviderID: f.bakery.ID, Location: "Delhi", FoodType: "Vegan", MealType: "Breakfast",
	})
	require.NoError(t, err)
	f.curry, err = CreateListing(ctx, database, model.Listing{
		FoodName: "Chicken Curry", Quantity: 25, ExpiryDate: date(2025, time.March, 20),
		ProviderID: f.market.ID, Location: "Mumbai", FoodType: "Non-Vegetarian", MealType: "Dinner",
	})
	require.NoError(t, err)

	return f
}
