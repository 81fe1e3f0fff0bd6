package importer

import "bitbucket.org/mmdatafocus/firesafety_backend/models"

// CalculatePriority ranks a tenant from its certification status and the
// defect counts attributed to it. Rules apply top-down, first match wins.
func CalculatePriority(fsc models.FscStatus, openDefects, majorDefects int) models.Priority {
	switch {
	case majorDefects > 0 || fsc == models.FscStatusOutstanding:
		return models.PriorityCritical
	case openDefects > 2 || fsc == models.FscStatusPending:
		return models.PriorityHigh
	case openDefects > 0:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
