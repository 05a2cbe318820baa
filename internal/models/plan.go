package models

// Plan is a static catalog entry. Plans are configuration, not data:
// they live in code and are never persisted.
type Plan struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Price        int64  `json:"price"`
	Credits      int64  `json:"credits"`
	DurationDays int    `json:"duration_days"`
}

var planCatalog = []Plan{
	{ID: "starter", Label: "Starter", Price: 99000, Credits: 300, DurationDays: 30},
	{ID: "creator", Label: "Creator", Price: 249000, Credits: 1000, DurationDays: 30},
	{ID: "studio", Label: "Studio", Price: 599000, Credits: 3000, DurationDays: 90},
}

// Plans returns the catalog in display order.
func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

func GetPlan(id string) (Plan, bool) {
	for _, p := range planCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
