package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// ClientFrequencyFactor rewards employees who have already completed visits for the job's client.
// Each completed visit is worth perVisit, up to limit.
//
// Visits are matched on the job's client id, so the factor still applies when
// the client record itself is missing from the snapshot.
type ClientFrequencyFactor struct {
	perVisit float64
	limit    float64
}

// NewClientFrequencyFactor creates a ClientFrequencyFactor
func NewClientFrequencyFactor(perVisit, limit float64) *ClientFrequencyFactor {
	return &ClientFrequencyFactor{perVisit: perVisit, limit: limit}
}

func (f *ClientFrequencyFactor) Name() string {
	return "ClientFrequency"
}

func (f *ClientFrequencyFactor) Max() float64 {
	return f.limit
}

func (f *ClientFrequencyFactor) Evaluate(snap *Snapshot, emp *model.Employee, job *model.Job, client *model.Client) float64 {
	visits := CompletedVisits(snap.Jobs, emp.ID, job.ClientID)
	return min(float64(visits)*f.perVisit, f.limit)
}

// CompletedVisits counts the completed jobs for the client that the employee was assigned to
func CompletedVisits(jobs []model.Job, employeeID, clientID string) int {
	count := 0
	for i := range jobs {
		j := &jobs[i]
		if j.ClientID == clientID && j.Status == model.JobStatusCompleted && j.HasEmployee(employeeID) {
			count++
		}
	}
	return count
}

// ProximityFactor rewards jobs close to where the employee will be beforehand.
//
// The employee's prior location is the address of their last assigned job earlier
// that day, or their home address. The comparison is textual, see ProximityTier.
type ProximityFactor struct {
	near    float64
	partial float64
}

// NewProximityFactor creates a ProximityFactor awarding near for a segment
// match and partial for a leading token match
func NewProximityFactor(near, partial float64) *ProximityFactor {
	return &ProximityFactor{near: near, partial: partial}
}

func (f *ProximityFactor) Name() string {
	return "Proximity"
}

func (f *ProximityFactor) Max() float64 {
	return max(f.near, f.partial)
}

func (f *ProximityFactor) Evaluate(snap *Snapshot, emp *model.Employee, job *model.Job, client *model.Client) float64 {
	prior := PriorLocation(snap.Jobs, emp, job)
	switch ProximityTier(prior, job.Address) {
	case TierNear:
		return f.near
	case TierPartial:
		return f.partial
	}
	return 0
}
