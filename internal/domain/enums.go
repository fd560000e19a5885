package domain

// Playstyle describes how a player approaches their games.
type Playstyle string

const (
	PlaystyleCasual      Playstyle = "casual"
	PlaystyleCompetitive Playstyle = "competitive"
	PlaystyleBoth        Playstyle = "both"
)

// Platforms a profile can list.
var Platforms = []string{
	"PC",
	"PlayStation",
	"Xbox",
	"Nintendo Switch",
	"Mobile",
}

// Genres a profile can pick as favorites.
var Genres = []string{
	"FPS",
	"RPG",
	"MMORPG",
	"MOBA",
	"Battle Royale",
	"Strategy",
	"Sports",
	"Racing",
	"Puzzle",
	"Horror",
	"Simulation",
	"Fighting",
	"Adventure",
	"Indie",
	"Other",
}

// PlayTimes a profile can mark as typical.
var PlayTimes = []string{
	"Morning",
	"Afternoon",
	"Evening",
	"Night",
	"Weekends",
}

// Pronouns options shown during onboarding.
var Pronouns = []string{
	"he/him",
	"she/her",
	"they/them",
	"other",
	"prefer not to say",
}

// Regions is the coarse geography list; profiles never store precise location.
var Regions = []string{
	"US - Northeast",
	"US - Southeast",
	"US - Midwest",
	"US - Southwest",
	"US - West",
	"Canada - East",
	"Canada - West",
	"UK",
	"EU - West",
	"EU - Central",
	"EU - East",
	"EU - North",
	"EU - South",
	"Asia - East",
	"Asia - Southeast",
	"Asia - South",
	"Oceania",
	"Latin America",
	"Middle East",
	"Africa",
	"Other",
}

// ReportCategories accepted by the moderation flow.
var ReportCategories = []string{
	"harassment",
	"spam",
	"inappropriate_content",
	"fake_profile",
	"underage",
	"other",
}

// Profile limits.
const (
	MinAge               = 18
	MaxPhotos            = 6
	MaxTopGames          = 3
	MaxGenres            = 5
	MaxBioLength         = 500
	MaxDisplayNameLength = 30
	MinDisplayNameLength = 2
	MaxMessageLength     = 2000
)

// Rate limits.
const (
	MaxSwipesPerHour     = 100
	MaxMessagesPerMinute = 10
	MaxReportsPerDay     = 10
)

// DiscoveryPageSize is the default page size for candidate discovery.
const DiscoveryPageSize = 20

func ValidPlaystyle(p Playstyle) bool {
	switch p {
	case PlaystyleCasual, PlaystyleCompetitive, PlaystyleBoth:
		return true
	}
	return false
}

func ValidPlatform(p string) bool       { return contains(Platforms, p) }
func ValidGenre(g string) bool          { return contains(Genres, g) }
func ValidPlayTime(t string) bool       { return contains(PlayTimes, t) }
func ValidPronouns(p string) bool       { return contains(Pronouns, p) }
func ValidRegion(r string) bool         { return contains(Regions, r) }
func ValidReportCategory(c string) bool { return contains(ReportCategories, c) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
