package reconcilequeue

// SweepJob triggers one reconciliation sweep. It carries no arguments;
// the sweep always scans every team lead.
type SweepJob struct{}

// Kind returns the job type identifier for River.
func (SweepJob) Kind() string { return "registration_sweep" }
