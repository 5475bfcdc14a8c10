package events

import "strconv"

const (
	StreamName   = "COMPARE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectRoomUpdated(room int) string { return "vehicles.room." + strconv.Itoa(room) + ".updated" }
func SubjectRoomCleared(room int) string { return "vehicles.room." + strconv.Itoa(room) + ".cleared" }

func SubjectVerdictResolved(room int) string {
	return "vehicles.compare." + strconv.Itoa(room) + ".resolved"
}

func SubjectVerdictFallback(room int) string {
	return "vehicles.compare." + strconv.Itoa(room) + ".fallback"
}

func SubjectSessionRecorded(sessionID string) string {
	return "vehicles.session." + sessionID + ".recorded"
}
