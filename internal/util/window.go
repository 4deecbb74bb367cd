package util

import "github.com/asecurityteam/rolling"

// RollingWindow keeps the last N appended values and knows how many of its
// slots have actually been filled, so averaging an empty window is well-defined.
type RollingWindow struct {
	size   int
	count  int
	policy *rolling.PointPolicy
}

func CreateRollingWindow(size int) *RollingWindow {
	if size <= 0 {
		size = 1
	}
	return &RollingWindow{
		size:   size,
		policy: rolling.NewPointPolicy(rolling.NewWindow(size)),
	}
}

func (w *RollingWindow) Append(value float64) {
	w.policy.Append(value)
	if w.count < w.size {
		w.count++
	}
}

// Len returns the number of values currently held by the window
func (w *RollingWindow) Len() int {
	return w.count
}

// Avg returns the average of all values in the window and false
// if the window doesn't contain any value yet.
func (w *RollingWindow) Avg() (float64, bool) {
	if w.count == 0 {
		return 0, false
	}
	// unfilled slots of a point policy are zero, so they don't contribute to the sum
	return w.policy.Reduce(rolling.Sum) / float64(w.count), true
}
