package schedule

import "github.com/SavrnaSS/replotre/internal/models"

// ResolveOverride picks the most specific override applicable to the pair.
// Precedence: exact user+influencer, then user-only, then influencer-only,
// then global. Overrides must already be ordered most-recent first so ties
// within a tier resolve to the newest row. Returns nil when nothing matches.
func ResolveOverride(userID int64, influencerID string, overrides []*models.ScheduleOverride) *models.ScheduleOverride {
	for _, o := range overrides {
		if o.UserID != nil && *o.UserID == userID && o.InfluencerID != nil && *o.InfluencerID == influencerID {
			return o
		}
	}
	for _, o := range overrides {
		if o.UserID != nil && *o.UserID == userID && o.InfluencerID == nil {
			return o
		}
	}
	for _, o := range overrides {
		if o.UserID == nil && o.InfluencerID != nil && *o.InfluencerID == influencerID {
			return o
		}
	}
	for _, o := range overrides {
		if o.UserID == nil && o.InfluencerID == nil {
			return o
		}
	}
	return nil
}
