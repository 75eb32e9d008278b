package constants

// Weekly review labels, chosen from the completion percentage when no weekday stands out
const (
	LabelPerfectWeek       = "perfect week"
	LabelStrongConsistency = "strong consistency"
	LabelBuildingMomentum  = "building momentum"
	LabelStartingSmall     = "starting small"

	// SkipDayLabelFormat takes the weekday name, e.g. "you often skip Mondays"
	SkipDayLabelFormat = "you often skip %ss"

	StrongConsistencyMin = 80
	BuildingMomentumMin  = 50
)

// WeekdayNames lists weekdays Monday-first, matching calendar week positions
var WeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
