package trophies

// Tier is the trophy earned for a round.
type Tier string

const (
	TierNone   Tier = ""
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// AllTiers returns the tiers from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold}
}

// TierFor returns the tier for score out of total:
// gold from 90%, silver from 70%, bronze from 50%.
func TierFor(score, total int) Tier {
	if total <= 0 || score < 0 {
		return TierNone
	}
	// Integer comparison keeps 9/10 exactly at the gold boundary.
	pct := score * 100
	switch {
	case pct >= 90*total:
		return TierGold
	case pct >= 70*total:
		return TierSilver
	case pct >= 50*total:
		return TierBronze
	default:
		return TierNone
	}
}

// Percent returns score/total rounded to the nearest whole percent.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*200 + total) / (2 * total)
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	default:
		return "No trophy"
	}
}

// Icon returns the medal shown next to the tier.
func (t Tier) Icon() string {
	switch t {
	case TierBronze:
		return "🥉"
	case TierSilver:
		return "🥈"
	case TierGold:
		return "🥇"
	default:
		return "⭐"
	}
}
