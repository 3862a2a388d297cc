package seed

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/foodshare/internal/db"
	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

const (
	providersCSV = `Provider_ID,Name,Type,Address,City,Contact
1,Sunrise Bakery,Restaurant,"12 Baker St, Block A",Delhi,+91-555-0101
2,Green Market,Grocery Store,7 Market Rd,Mumbai,+91-555-0102
`
	receiversCSV = `Receiver_ID,Name,Type,City,Contact
1,City Shelter,Shelter,Delhi,+91-555-0201
2,Hope NGO,NGO,Mumbai,+91-555-0202
`
	listingsCSV = `Food_ID,Food_Name,Quantity,Expiry_Date,Provider_ID,Provider_Type,Location,Food_Type,Meal_Type
1,Rice,50,3/17/2025,1,Restaurant,Delhi,Vegetarian,Lunch
2,Bread,20,2025-03-05,1,Restaurant,Delhi,Vegan,Breakfast
3,Fish,15,2025-03-09,2,Grocery Store,Mumbai,Non-Vegetarian,Dinner
`
	claimsCSV = `Claim_ID,Food_ID,Receiver_ID,Status,Timestamp
1,1,1,Pending,2025-03-05 05:26
2,3,2,Completed,2025-03-06 11:00:00
`
)

func writeSeedDir(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"providers_data.csv":     providersCSV,
		"receivers_data.csv":     receiversCSV,
		"food_listings_data.csv": listingsCSV,
		"claims_data.csv":        claimsCSV,
	}
	for name, content := range overrides {
		files[name] = content
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func rowCounts(t *testing.T, database *sql.DB) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	for _, table := range db.Tables {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		counts[table] = n
	}
	return counts
}

func TestBootstrapLoadsSeedFiles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	dir := writeSeedDir(t, nil)

	res, err := Bootstrap(ctx, database, dir)
	require.NoError(t, err)
	assert.True(t, res.Seeded)
	assert.Equal(t, map[string]int{"providers": 2, "receivers": 2, "food_listings": 3, "claims": 2}, res.Rows)
	assert.Equal(t, filepath.Join(dir, "food_listings_data.csv"), res.Files["food_listings"])

	delhi, err := store.ListFood(ctx, database, model.ListingFilter{City: "Delhi"})
	require.NoError(t, err)
	require.Len(t, delhi, 2)
	assert.Equal(t, "Rice", delhi[0].FoodName)
	assert.Equal(t, 50, delhi[0].Quantity)
	assert.Equal(t, "2025-03-17", delhi[0].ExpiryDate.Format(model.DateLayout))

	mumbai, err := store.ListFood(ctx, database, model.ListingFilter{City: "Mumbai"})
	require.NoError(t, err)
	for _, l := range mumbai {
		assert.NotEqual(t, "Rice", l.FoodName)
	}

	claim, err := store.GetClaim(ctx, database, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimPending, claim.Status)
	assert.Equal(t, "2025-03-05 05:26:00", claim.Timestamp.Format(model.TimestampLayout))

	p, err := store.GetProvider(ctx, database, 1)
	require.NoError(t, err)
	assert.Equal(t, "12 Baker St, Block A", p.Address)

	seededAt, ok, err := store.GetSetting(ctx, database, store.SettingSeededAt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, seededAt)
}

func TestBootstrapIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodshare.sqlite3")
	dir := writeSeedDir(t, nil)
	ctx := context.Background()

	database, err := db.Open(path)
	require.NoError(t, err)
	res, err := Bootstrap(ctx, database, dir)
	require.NoError(t, err)
	require.True(t, res.Seeded)
	first := rowCounts(t, database)
	require.NoError(t, database.Close())

	database, err = db.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	res, err = Bootstrap(ctx, database, dir)
	require.NoError(t, err)
	assert.False(t, res.Seeded)
	assert.Equal(t, first, rowCounts(t, database))

	// A populated store does not need the seed files at all.
	res, err = Bootstrap(ctx, database, t.TempDir())
	require.NoError(t, err)
	assert.False(t, res.Seeded)
	assert.Equal(t, first, rowCounts(t, database))
}

func TestBootstrapMissingFile(t *testing.T) {
	database := db.NewTestDB(t)
	dir := writeSeedDir(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, "claims_data.csv")))

	_, err := Bootstrap(context.Background(), database, dir)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, map[string]int{"providers": 0, "receivers": 0, "food_listings": 0, "claims": 0}, rowCounts(t, database))
}

func TestBootstrapMissingDirectory(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := Bootstrap(context.Background(), database, filepath.Join(t.TempDir(), "nope"))
	var lerr *LoadError
	assert.ErrorAs(t, err, &lerr)

	_, err = Bootstrap(context.Background(), database, "")
	assert.ErrorAs(t, err, &lerr)
}

func TestBootstrapMalformedRows(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantLine int
	}{
		{
			name: "quantity not an integer",
			file: "food_listings_data.csv",
			content: `Food_ID,Food_Name,Quantity,Expiry_Date,Provider_ID,Provider_Type,Location,Food_Type,Meal_Type
1,Rice,50,2025-03-17,1,Restaurant,Delhi,Vegetarian,Lunch
2,Bread,lots,2025-03-05,1,Restaurant,Delhi,Vegan,Breakfast
`,
			wantLine: 3,
		},
		{
			name: "negative quantity",
			file: "food_listings_data.csv",
			content: `Food_ID,Food_Name,Quantity,Expiry_Date,Provider_ID,Provider_Type,Location,Food_Type,Meal_Type
1,Rice,-5,2025-03-17,1,Restaurant,Delhi,Vegetarian,Lunch
`,
			wantLine: 2,
		},
		{
			name: "malformed date",
			file: "food_listings_data.csv",
			content: `Food_ID,Food_Name,Quantity,Expiry_Date,Provider_ID,Provider_Type,Location,Food_Type,Meal_Type
1,Rice,5,next week,1,Restaurant,Delhi,Vegetarian,Lunch
`,
			wantLine: 2,
		},
		{
			name: "wrong column count",
			file: "receivers_data.csv",
			content: `Receiver_ID,Name,Type,City,Contact
1,City Shelter,Shelter,Delhi
`,
			wantLine: 2,
		},
		{
			name: "missing header column",
			file: "providers_data.csv",
			content: `Provider_ID,Name,Type,City,Contact
1,Sunrise Bakery,Restaurant,Delhi,555
`,
			wantLine: 1,
		},
		{
			name: "unknown claim status",
			file: "claims_data.csv",
			content: `Claim_ID,Food_ID,Receiver_ID,Status,Timestamp
1,1,1,Shipped,2025-03-05 05:26
`,
			wantLine: 2,
		},
		{
			name: "claim references missing listing",
			file: "claims_data.csv",
			content: `Claim_ID,Food_ID,Receiver_ID,Status,Timestamp
1,1,1,Pending,2025-03-05 05:26
2,99,1,Pending,2025-03-05 05:27
`,
			wantLine: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := db.NewTestDB(t)
			dir := writeSeedDir(t, map[string]string{tt.file: tt.content})

			_, err := Bootstrap(context.Background(), database, dir)
			var lerr *LoadError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, filepath.Join(dir, tt.file), lerr.File)
			assert.Equal(t, tt.wantLine, lerr.Line)

			populated, err := HasData(context.Background(), database)
			require.NoError(t, err)
			assert.False(t, populated, "failed bootstrap must leave the store empty")
		})
	}
}

func TestBootstrapHeaderCaseAndOrder(t *testing.T) {
	database := db.NewTestDB(t)
	dir := writeSeedDir(t, map[string]string{
		"receivers_data.csv": "\ufeffcity,receiver_id,NAME,type,contact\nPune,7,Night Kitchen,Charity,999\n",
	})

	_, err := Bootstrap(context.Background(), database, dir)
	require.NoError(t, err)

	r, err := store.GetReceiver(context.Background(), database, 7)
	require.NoError(t, err)
	assert.Equal(t, model.Receiver{ID: 7, Name: "Night Kitchen", Type: "Charity", City: "Pune", Contact: "999"}, *r)
}

func TestLocate(t *testing.T) {
	dir := writeSeedDir(t, map[string]string{"notes.txt": "ignored"})

	files, err := Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"providers":     filepath.Join(dir, "providers_data.csv"),
		"receivers":     filepath.Join(dir, "receivers_data.csv"),
		"food_listings": filepath.Join(dir, "food_listings_data.csv"),
		"claims":        filepath.Join(dir, "claims_data.csv"),
	}, files)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "old_claims.csv"), []byte(claimsCSV), 0o644))
	_, err = Locate(dir)
	var lerr *LoadError
	assert.ErrorAs(t, err, &lerr)
}
