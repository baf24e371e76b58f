package models

// Personality identifies one of the four fixed behavioral archetypes.
type Personality string

const (
	PersonalityCasual     Personality = "casual"
	PersonalityInfluencer Personality = "influencer"
	PersonalityPowerUser  Personality = "power_user"
	PersonalityLurker     Personality = "lurker"
)

// PersonalityProfile holds the behavioral parameters and cosmetic pools for
// one archetype.
type PersonalityProfile struct {
	Name             string
	PostingFrequency float64 // relative posting weight
	EngagementRate   float64 // per-post engagement probability multiplier, 0-1
	ContentTypes     []string
	Hashtags         []string
	FollowerRange    [2]int    // inclusive uniform range for initial followers
	NamePrefixes     []string  // username prefix pool
	AvatarColors     [2]string // gradient stops
}

// Profiles maps each personality to its archetype parameters.
var Profiles = map[Personality]PersonalityProfile{
	PersonalityCasual: {
		Name:             "Casual User",
		PostingFrequency: 2,
		EngagementRate:   0.3,
		ContentTypes:     []string{"personal", "food", "lifestyle"},
		Hashtags:         []string{"life", "mood", "fun", "food", "weekend"},
		FollowerRange:    [2]int{50, 500},
		NamePrefixes:     []string{"Coffee", "Music", "Book", "Travel", "Nature"},
		AvatarColors:     [2]string{"#FF9800", "#F44336"},
	},
	PersonalityInfluencer: {
		Name:             "Influencer",
		PostingFrequency: 8,
		EngagementRate:   0.7,
		ContentTypes:     []string{"promotional", "inspirational", "tech"},
		Hashtags:         []string{"inspiration", "goals", "lifestyle", "tech", "innovation", "success"},
		FollowerRange:    [2]int{10000, 100000},
		NamePrefixes:     []string{"Tech", "Lifestyle", "Success", "Dream", "Vision"},
		AvatarColors:     [2]string{"#9C27B0", "#E91E63"},
	},
	PersonalityPowerUser: {
		Name:             "Power User",
		PostingFrequency: 12,
		EngagementRate:   0.9,
		ContentTypes:     []string{"educational", "news", "tech", "fitness"},
		Hashtags:         []string{"education", "fitness", "motivation", "productivity", "tech", "news"},
		FollowerRange:    [2]int{1000, 15000},
		NamePrefixes:     []string{"Fitness", "Productivity", "Code", "Business", "Growth"},
		AvatarColors:     [2]string{"#4CAF50", "#2196F3"},
	},
	PersonalityLurker: {
		Name:             "Lurker",
		PostingFrequency: 0.5,
		EngagementRate:   0.1,
		ContentTypes:     []string{"rare_personal"},
		Hashtags:         []string{"thoughts", "quiet", "observation"},
		FollowerRange:    [2]int{10, 100},
		NamePrefixes:     []string{"Silent", "Observer", "Quiet", "Thinking", "Mysterious"},
		AvatarColors:     [2]string{"#607D8B", "#795548"},
	},
}

// ProfileFor returns the profile for p, falling back to the casual archetype
// for unrecognized personalities.
func ProfileFor(p Personality) PersonalityProfile {
	if profile, ok := Profiles[p]; ok {
		return profile
	}
	return Profiles[PersonalityCasual]
}
