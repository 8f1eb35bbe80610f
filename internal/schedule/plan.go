package schedule

import "github.com/SavrnaSS/replotre/internal/models"

const (
	PlanBasic = "basic"
	PlanPro   = "pro"
	PlanElite = "elite"
)

// Plan maps a plan key to its posting cadence label and ordered time slots.
type Plan struct {
	Key   string
	Label string
	Slots []string
}

var plans = map[string]Plan{
	PlanBasic: {
		Key:   PlanBasic,
		Label: "Every other day",
		Slots: []string{"10:00 AM"},
	},
	PlanPro: {
		Key:   PlanPro,
		Label: "Twice daily",
		Slots: []string{"10:00 AM", "6:00 PM"},
	},
	PlanElite: {
		Key:   PlanElite,
		Label: "Six times daily",
		Slots: []string{"8:00 AM", "10:00 AM", "12:00 PM", "2:00 PM", "6:00 PM", "9:00 PM"},
	},
}

// PlanByKey returns the plan for key, defaulting to basic for unknown keys.
func PlanByKey(key string) Plan {
	if p, ok := plans[key]; ok {
		return p
	}
	return plans[PlanBasic]
}

// DailyQuota returns the number of posts allowed on the day at dayIndex.
// Override daily wins over override monthly wins over the plan formula.
// A monthly budget is spread as floor(m/30) per day with the remainder going
// to the earliest days, so any 30-day window starting at day 0 sums to m.
func DailyQuota(plan Plan, dayIndex int, ov *models.ScheduleOverride) int {
	if ov != nil {
		if ov.OverrideDaily != nil {
			if *ov.OverrideDaily < 0 {
				return 0
			}
			return *ov.OverrideDaily
		}
		if ov.OverrideMonthly != nil {
			m := *ov.OverrideMonthly
			if m <= 0 {
				return 0
			}
			quota := m / 30
			if dayIndex < m%30 {
				quota++
			}
			return quota
		}
	}

	switch plan.Key {
	case PlanPro:
		return 2
	case PlanElite:
		return 6
	default:
		if dayIndex%2 == 0 {
			return 1
		}
		return 0
	}
}

// EffectiveSlots prepends the formatted preferred time to the plan's slot
// list, dropping a duplicate occurrence further down.
func EffectiveSlots(plan Plan, preferred string) []string {
	if preferred == "" {
		return plan.Slots
	}
	slots := make([]string, 0, len(plan.Slots)+1)
	slots = append(slots, preferred)
	for _, s := range plan.Slots {
		if s == preferred {
			continue
		}
		slots = append(slots, s)
	}
	return slots
}
