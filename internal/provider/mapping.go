package provider

// Default provider vocabulary. These match the provider's documented values.
const (
	DefaultReadability = "University"
	DefaultPurpose     = "General Writing"
	DefaultStrength    = "Balanced"
	DefaultModel       = "v2"
)

// The tables below are currently identity maps. They stay as the seam for
// future provider vocabulary changes; unknown values fall back to defaults.

var readabilityMap = map[string]string{
	"High School": "High School",
	"University":  "University",
	"Doctorate":   "Doctorate",
	"Journalist":  "Journalist",
	"Marketing":   "Marketing",
}

var purposeMap = map[string]string{
	"General Writing":    "General Writing",
	"Essay":              "Essay",
	"Article":            "Article",
	"Marketing Material": "Marketing Material",
	"Story":              "Story",
	"Cover Letter":       "Cover Letter",
	"Report":             "Report",
	"Business Material":  "Business Material",
	"Legal Material":     "Legal Material",
}

var strengthMap = map[string]string{
	"Quality":    "Quality",
	"Balanced":   "Balanced",
	"More Human": "More Human",
}

// MapReadability translates an application readability value to the
// provider's vocabulary, defaulting when empty or unknown.
func MapReadability(readability string) string {
	if mapped, ok := readabilityMap[readability]; ok {
		return mapped
	}
	return DefaultReadability
}

// MapPurpose translates an application purpose value to the provider's
// vocabulary, defaulting when empty or unknown.
func MapPurpose(purpose string) string {
	if mapped, ok := purposeMap[purpose]; ok {
		return mapped
	}
	return DefaultPurpose
}

// MapStrength translates an application strength value to the provider's
// vocabulary, defaulting when empty or unknown.
func MapStrength(strength string) string {
	if mapped, ok := strengthMap[strength]; ok {
		return mapped
	}
	return DefaultStrength
}
