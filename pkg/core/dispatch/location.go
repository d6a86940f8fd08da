package dispatch

import (
	"strings"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// Tier is the result of the textual address comparison
type Tier int

const (
	TierNone Tier = iota
	TierPartial
	TierNear
)

// PriorLocation returns where the employee is before the job starts.
//
// That is the address of the employee's latest assigned job on the same date with a
// start time strictly before the job's, excluding the job itself and regardless of
// status. When two such jobs share a start time the later one in the history wins.
// Falls back to the employee's home address.
func PriorLocation(jobs []model.Job, emp *model.Employee, job *model.Job) string {
	var last *model.Job
	for i := range jobs {
		candidate := &jobs[i]
		if candidate.ID == job.ID || candidate.ScheduledDate != job.ScheduledDate {
			continue
		}
		if candidate.StartTime >= job.StartTime || !candidate.HasEmployee(emp.ID) {
			continue
		}
		if last == nil || candidate.StartTime >= last.StartTime {
			last = candidate
		}
	}

	if last != nil {
		return last.Address
	}
	return emp.HomeAddress()
}

// ProximityTier compares two addresses textually. This is not a distance.
//
// Both are lower cased. If the part before the first comma of either address
// is contained in the other, the tier is TierNear. Otherwise if the first
// space separated token of both is identical, the tier is TierPartial.
//
// An empty leading segment is contained in any string, so an empty address
// always compares as TierNear.
func ProximityTier(from, to string) Tier {
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	if strings.Contains(from, firstSegment(to, ",")) || strings.Contains(to, firstSegment(from, ",")) {
		return TierNear
	}
	if firstSegment(from, " ") == firstSegment(to, " ") {
		return TierPartial
	}
	return TierNone
}

func firstSegment(s, sep string) string {
	head, _, _ := strings.Cut(s, sep)
	return head
}
