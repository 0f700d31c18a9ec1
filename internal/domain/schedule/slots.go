package schedule

import "time"

// Slots produces candidate start times inside w, stepping by step,
// such that start+duration fits within the window. A window shorter
// than duration yields nil rather than an error. The result is
// recomputed per call and never cached across schedule edits.
func Slots(w Window, duration, step time.Duration) []time.Time {
	if duration <= 0 || step <= 0 {
		return nil
	}

	var out []time.Time
	for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(step) {
		out = append(out, cur)
	}
	return out
}
