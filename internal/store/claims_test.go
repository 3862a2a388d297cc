package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/foodshare/internal/db"
	"github.com/erazemk/foodshare/internal/model"
)

func TestCreateClaimPending(t *testing.T) {
	database := db.NewTestDB(t)
	f := newFixture(t, database)

	before := time.Now().UTC().Add(-time.Second)
	claim, err := CreateClaim(context.Background(), database, f.rice.ID, f.shelter.ID)
	require.NoError(t, err)

	assert.Equal(t, model.ClaimPending, claim.Status)
	assert.Equal(t, f.rice.ID, claim.ListingID)
	assert.Equal(t, f.shelter.ID, claim.ReceiverID)
	assert.Equal(t, "Rice", claim.FoodName)
	assert.Equal(t, "City Shelter", claim.ReceiverName)
	assert.False(t, claim.Timestamp.Before(before.Truncate(time.Second)))
}

func TestCreateClaimMissingReferences(t *testing.T) {
	database := db.NewTestDB(t)
	f := newFixture(t, database)
	ctx := context.Background()

	_, err := CreateClaim(ctx, database, 999, f.shelter.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "listing", nf.Entity)

	_, err = CreateClaim(ctx, database, f.rice.ID, 999)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "receiver", nf.Entity)

	claims, err := ListClaims(ctx, database, "")
	require.NoError(t, err)
	assert.Empty(t, claims, "failed claims must not be inserted")
}

func TestUpdateClaimStatusOnce(t *testing.T) {
	database := db.NewTestDB(t)
	f := newFixture(t, database)
	ctx := context.Background()

	claim, err := CreateClaim(ctx, database, f.rice.ID, f.shelter.ID)
	require.NoError(t, err)

	updated, err := UpdateClaimStatus(ctx, database, claim.ID, model.ClaimCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimCompleted, updated.Status)

	_, err = UpdateClaimStatus(ctx, database, claim.ID, model.ClaimCancelled)
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, model.ClaimCompleted, terr.From)
	assert.Equal(t, model.ClaimCancelled, terr.To)

	got, err := GetClaim(ctx, database, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimCompleted, got.Status, "terminal status must be unchanged")
}

func TestUpdateClaimStatusTerminalAlwaysFails(t *testing.T) {
	database := db.NewTestDB(t)
	f := newFixture(t, database)
	ctx := context.Background()

	for _, terminal := range []model.ClaimStatus{model.ClaimCompleted, model.ClaimCancelled} {
		claim, err := CreateClaim(ctx, database, f.curry.ID, f.foodbank.ID)
		require.NoError(t, err)
		_, err = UpdateClaimStatus(ctx, database, claim.ID, terminal)
		require.NoError(t, err)

		for _, next := range []model.ClaimStatus{model.ClaimCompleted, model.ClaimCancelled, model.ClaimPending, "Shipped"} {
			_, err := UpdateClaimStatus(ctx, database, claim.ID, next)
			var terr *InvalidTransitionError
			assert.ErrorAs(t, err, &terr, "%s -> %s", terminal, next)
		}

		got, err := GetClaim(ctx, database, claim.ID)
		require.NoError(t, err)
		assert.Equal(t, terminal, got.Status)
	}
}

func TestUpdateClaimStatusRejectsPendingTarget(t *testing.T) {
	database := db.NewTestDB(t)
	f := newFixture(t, database)
	ctx := context.Background()

	claim, err := CreateClaim(ctx, database, f.rice.ID, f.shelter.ID)
	require.NoError(t, err)

	_, err = UpdateClaimStatus(ctx, database, claim.ID, model.ClaimPending)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = UpdateClaimStatus(ctx, database, claim.ID, "Shipped")
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateClaimStatusUnknownClaim(t *testing.T) {
	database := db.NewTestDB(t)

	for _, status := range []model.ClaimStatus{model.ClaimCompleted, model.ClaimPending, "Shipped"} {
		_, err := UpdateClaimStatus(context.Background(), database, 4242, status)
		assert.True(t, IsNotFound(err), "target %s: %v", status, err)
	}
}

func TestListClaimsByStatus(t *testing.T) {
	database := db.NewTestDB(t)
	f := newFixture(t, database)
	ctx := context.Background()

	c1, err := CreateClaim(ctx, database, f.rice.ID, f.shelter.ID)
	require.NoError(t, err)
	_, err = CreateClaim(ctx, database, f.bread.ID, f.foodbank.ID)
	require.NoError(t, err)
	_, err = UpdateClaimStatus(ctx, database, c1.ID, model.ClaimCancelled)
	require.NoError(t, err)

	all, err := ListClaims(ctx, database, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := ListClaims(ctx, database, model.ClaimPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Bread", pending[0].FoodName)
}
