package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
)

// scoreColor picks a colour for a score relative to the scorer's maximum.
// Disqualified is red, the top third green, the middle third yellow.
func scoreColor(result dispatch.Result, maxScore float64) string {
	switch {
	case result.Disqualified:
		return colorRed
	case result.Value >= maxScore*2/3:
		return colorGreen
	case result.Value >= maxScore/3:
		return colorYellow
	default:
		return colorDim
	}
}

// formatScore renders a candidate's score, or the disqualification reason
func formatScore(result dispatch.Result) string {
	if result.Disqualified {
		return fmt.Sprintf("-1 (%s)", strings.ReplaceAll(string(result.Reason), "_", " "))
	}
	return fmt.Sprintf("%.1f", result.Value)
}

// formatBreakdown lists factor contributions in name order, skipping zeros
func formatBreakdown(breakdown map[string]float64) string {
	names := make([]string, 0, len(breakdown))
	for name, value := range breakdown {
		if value != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %+.1f", name, breakdown[name]))
	}
	return strings.Join(parts, ", ")
}

// printCandidates prints a ranked candidate table
func printCandidates(candidates []dispatch.Candidate, maxScore float64, selected []string) {
	isSelected := make(map[string]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	nameColWidth := 20
	for _, c := range candidates {
		if len(c.Name)+2 > nameColWidth {
			nameColWidth = len(c.Name) + 2
		}
	}

	fmt.Printf("%s   %-*s  %-22s  %s%s\n", colorBold, nameColWidth, "Employee", "Score", "Breakdown", colorReset)
	fmt.Println(strings.Repeat("-", nameColWidth+50))
	for _, c := range candidates {
		marker := " "
		if isSelected[c.EmployeeID] {
			marker = "*"
		}
		fmt.Printf(" %s %-*s  %s%-22s%s  %s\n",
			marker,
			nameColWidth, c.Name,
			scoreColor(c.Result, maxScore), formatScore(c.Result), colorReset,
			formatBreakdown(c.Result.Breakdown))
	}
}
