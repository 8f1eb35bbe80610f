package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SavrnaSS/replotre/internal/models"
)

func overrideFor(userID *int64, influencerID *string, reason string) *models.ScheduleOverride {
	return &models.ScheduleOverride{
		UserID:       userID,
		InfluencerID: influencerID,
		Reason:       &reason,
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	userID := int64(7)
	otherUser := int64(8)
	influencer := "lucy"

	global := overrideFor(nil, nil, "global")
	influencerOnly := overrideFor(nil, &influencer, "influencer")
	userOnly := overrideFor(&userID, nil, "user")
	exact := overrideFor(&userID, &influencer, "exact")
	foreign := overrideFor(&otherUser, &influencer, "foreign")

	overrides := []*models.ScheduleOverride{foreign, global, influencerOnly, userOnly, exact}

	got := ResolveOverride(userID, influencer, overrides)
	assert.Equal(t, "exact", *got.Reason)

	got = ResolveOverride(userID, influencer, []*models.ScheduleOverride{foreign, global, influencerOnly, userOnly})
	assert.Equal(t, "user", *got.Reason)

	got = ResolveOverride(userID, influencer, []*models.ScheduleOverride{foreign, global, influencerOnly})
	assert.Equal(t, "influencer", *got.Reason)

	got = ResolveOverride(userID, influencer, []*models.ScheduleOverride{foreign, global})
	assert.Equal(t, "global", *got.Reason)

	assert.Nil(t, ResolveOverride(userID, influencer, []*models.ScheduleOverride{foreign}))
	assert.Nil(t, ResolveOverride(userID, influencer, nil))
}

func TestResolveOverrideNewestWinsWithinTier(t *testing.T) {
	userID := int64(7)

	newer := overrideFor(&userID, nil, "newer")
	older := overrideFor(&userID, nil, "older")

	// Lists arrive most-recent first.
	got := ResolveOverride(userID, "lucy", []*models.ScheduleOverride{newer, older})
	assert.Equal(t, "newer", *got.Reason)
}
