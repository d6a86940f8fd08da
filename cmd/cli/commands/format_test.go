package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
)

func TestScoreColor(t *testing.T) {
	tests := []struct {
		name     string
		result   dispatch.Result
		expected string
	}{
		{"disqualified is red", dispatch.Result{Disqualified: true, Reason: dispatch.ReasonOnLeave}, colorRed},
		{"top third is green", dispatch.Result{Value: 100}, colorGreen},
		{"exactly two thirds is green", dispatch.Result{Value: 60}, colorGreen},
		{"middle third is yellow", dispatch.Result{Value: 45}, colorYellow},
		{"bottom third is dim", dispatch.Result{Value: 10}, colorDim},
		{"zero is dim", dispatch.Result{}, colorDim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreColor(tt.result, 90))
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "70.0", formatScore(dispatch.Result{Value: 70}))
	assert.Equal(t, "82.5", formatScore(dispatch.Result{Value: 82.5}))
	assert.Equal(t, "-1 (client rejected)", formatScore(dispatch.Result{Disqualified: true, Reason: dispatch.ReasonClientRejected}))
}

func TestFormatBreakdown(t *testing.T) {
	breakdown := map[string]float64{
		"Utilization":    30,
		"DayPreference":  20,
		"Proximity":      0,
		"ClientHistory":  7.5,
		"HourPreference": 20,
	}

	assert.Equal(t, "ClientHistory +7.5, DayPreference +20.0, HourPreference +20.0, Utilization +30.0", formatBreakdown(breakdown))
	assert.Equal(t, "", formatBreakdown(nil))
}
