package monitor

type sweepMetrics struct {
	checked     int
	notified    int
	unchanged   int
	skipped     int
	undelivered int
	errored     int
}

func (m *sweepMetrics) Add(other *sweepMetrics) {
	m.checked += other.checked
	m.notified += other.notified
	m.unchanged += other.unchanged
	m.skipped += other.skipped
	m.undelivered += other.undelivered
	m.errored += other.errored
}

func (m *sweepMetrics) logArgs() []any {
	args := []any{"checked", m.checked}
	if m.notified != 0 {
		args = append(args, "notified", m.notified)
	}
	if m.unchanged != 0 {
		args = append(args, "unchanged", m.unchanged)
	}
	if m.skipped != 0 {
		args = append(args, "skipped", m.skipped)
	}
	if m.undelivered != 0 {
		args = append(args, "undelivered", m.undelivered)
	}
	if m.errored != 0 {
		args = append(args, "errored", m.errored)
	}
	return args
}
