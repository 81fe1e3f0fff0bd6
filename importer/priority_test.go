package importer

import (
	"testing"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
)

func TestCalculatePriority(t *testing.T) {
	cases := []struct {
		name   string
		fsc    models.FscStatus
		open   int
		major  int
		want   models.Priority
	}{
		{"major defects trump everything", models.FscStatusCompliant, 1, 1, models.PriorityCritical},
		{"outstanding fsc is critical", models.FscStatusOutstanding, 0, 0, models.PriorityCritical},
		{"many open defects is high", models.FscStatusCompliant, 3, 0, models.PriorityHigh},
		{"pending fsc is high", models.FscStatusPending, 0, 0, models.PriorityHigh},
		{"pending with no defects still high", models.FscStatusPending, 0, 0, models.PriorityHigh},
		{"some open defects is medium", models.FscStatusCompliant, 2, 0, models.PriorityMedium},
		{"one open defect is medium", models.FscStatusReceived, 1, 0, models.PriorityMedium},
		{"clean tenant is low", models.FscStatusCompliant, 0, 0, models.PriorityLow},
		{"not applicable with nothing open is low", models.FscStatusNotApplicable, 0, 0, models.PriorityLow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CalculatePriority(c.fsc, c.open, c.major); got != c.want {
				t.Fatalf("CalculatePriority(%s, %d, %d) = %s, want %s",
					c.fsc, c.open, c.major, got, c.want)
			}
		})
	}
}
