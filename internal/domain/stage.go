package domain

// LifecycleStage represents a named, ordered phase of the client
// relationship (e.g. Prospect, Live Client). Stages are read-only from
// this system's perspective.
type LifecycleStage struct {
	ID    string
	Name  string
	Order int // sort position; 0 when absent upstream
}

// StageInfo is the resolved {name, order} pair attached to clients after
// the stage lookup is built.
type StageInfo struct {
	Name  string
	Order int
}
