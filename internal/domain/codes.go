package domain

// Helpdesk integer codes mapped to display strings. The code sets are fixed
// by the upstream API; anything outside them resolves to an explicit
// "Unknown" sentinel rather than failing.

const (
	UnknownStatus   = "Unknown Status"
	UnknownPriority = "Unknown Priority"
)

var statusNames = map[int]string{
	2:  "Open",
	3:  "Pending",
	4:  "Resolved",
	5:  "Closed",
	6:  "New",
	7:  "Pending access",
	8:  "Waiting for RnD",
	9:  "Pending other ticket",
	10: "Waiting for maintenance",
	11: "Waiting for bugfix",
	12: "Service request triage",
	13: "Rejected",
	14: "Duplicate",
}

var priorityNames = map[int]string{
	1: "Low",
	2: "Medium",
	3: "High",
	4: "Urgent",
}

// StatusName returns the display string for a status code.
func StatusName(code int) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return UnknownStatus
}

// PriorityName returns the display string for a priority code.
func PriorityName(code int) string {
	if name, ok := priorityNames[code]; ok {
		return name
	}
	return UnknownPriority
}
