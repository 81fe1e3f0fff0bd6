package models

type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

type FscStatus string

const (
	FscStatusPending       FscStatus = "Pending"
	FscStatusRequested     FscStatus = "Requested"
	FscStatusReceived      FscStatus = "Received"
	FscStatusCompliant     FscStatus = "Compliant"
	FscStatusOutstanding   FscStatus = "Outstanding"
	FscStatusNotApplicable FscStatus = "Not Applicable"
)

type DefectRisk string

const (
	DefectRiskMajor  DefectRisk = "Major"
	DefectRiskMedium DefectRisk = "Medium"
	DefectRiskMinor  DefectRisk = "Minor"
)

type DefectProgress string

const (
	DefectProgressOutstanding DefectProgress = "Outstanding"
	DefectProgressInProgress  DefectProgress = "In Progress"
	DefectProgressCompleted   DefectProgress = "Completed"
)

// Shared vocabulary used by every aggregation query. Keep these as the single
// source of truth; the same sets appear in the dashboard, AFSS schedule,
// monthly report and per-station rollups.
var (
	ActiveLeaseStatuses    = []string{"Current", "Holdover", "Leased"}
	FscResolvedStatuses    = []string{"Received", "Compliant"}
	FscOutstandingStatuses = []string{"Outstanding", "Pending"}
	OpenDefectProgress     = []string{"In Progress", "Outstanding"}
	MajorDefectRisks       = []string{"Major", "Medium"}
)

var MonthNames = map[int]string{
	1: "January", 2: "February", 3: "March", 4: "April",
	5: "May", 6: "June", 7: "July", 8: "August",
	9: "September", 10: "October", 11: "November", 12: "December",
}

// MonthName renders an optional 1-12 month as its display name, "" when unset.
func MonthName(m *int) string {
	if m == nil {
		return ""
	}
	return MonthNames[*m]
}

var DocumentCategories = []string{
	"Fire Safety Schedule (FSS)",
	"Annual Fire Safety Statement (AFSS)",
	"Fire Safety Certificate (FSC)",
	"Inspection Certificate",
	"Compliance Report",
	"Defect Photo",
	"Defect Report",
	"Correspondence",
	"General",
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// IsActiveLease reports whether an optional lease status counts as active.
func IsActiveLease(status *string) bool {
	return status != nil && contains(ActiveLeaseStatuses, *status)
}

func IsFscResolved(status FscStatus) bool {
	return contains(FscResolvedStatuses, string(status))
}

func IsFscOutstanding(status FscStatus) bool {
	return contains(FscOutstandingStatuses, string(status))
}

// IsOpenDefect reports whether a defect progress value counts as open.
func IsOpenDefect(progress *string) bool {
	return progress != nil && contains(OpenDefectProgress, *progress)
}

// IsMajorRisk reports whether a defect risk value counts as major for
// priority purposes.
func IsMajorRisk(risk *string) bool {
	return risk != nil && contains(MajorDefectRisks, *risk)
}
