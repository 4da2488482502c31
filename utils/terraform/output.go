package terraform

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	planSummaryPattern    = regexp.MustCompile(`Plan: (\d+) to add, (\d+) to change, (\d+) to destroy\.`)
	applySummaryPattern   = regexp.MustCompile(`Apply complete! Resources: (\d+) added, (\d+) changed, (\d+) destroyed\.`)
	destroySummaryPattern = regexp.MustCompile(`Destroy complete! Resources: (\d+) destroyed\.`)
)

// ParseStateSummary derives a short additions/changes/deletions description
// from terraform's human-readable output. It returns an empty string when the
// output carries no recognizable summary line.
func ParseStateSummary(stdout string) string {
	if m := planSummaryPattern.FindStringSubmatch(stdout); m != nil {
		return fmt.Sprintf("%s to add, %s to change, %s to destroy", m[1], m[2], m[3])
	}
	if m := applySummaryPattern.FindStringSubmatch(stdout); m != nil {
		return fmt.Sprintf("%s added, %s changed, %s destroyed", m[1], m[2], m[3])
	}
	if m := destroySummaryPattern.FindStringSubmatch(stdout); m != nil {
		return fmt.Sprintf("%s destroyed", m[1])
	}
	if strings.Contains(stdout, "No changes.") {
		return "no changes"
	}
	return ""
}
