package availability

import "fmt"

const (
	SlotStepMinutes = 30
	SlotsPerDay     = 24 * 60 / SlotStepMinutes
)

// TimeSlots returns the half-hour labels "00:00".."23:30" in ascending order.
// A fresh slice is built on every call.
func TimeSlots() []string {
	out := make([]string, 0, SlotsPerDay)
	for m := 0; m < 24*60; m += SlotStepMinutes {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}
