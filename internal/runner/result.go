package runner

// Result holds the output of one child-process execution.
type Result struct {
	RunID     string // unique identifier for this run
	ExitCode  int    // process exit code; 0 when the run timed out
	Stdout    string // captured stdout (may be truncated)
	Stderr    string // captured stderr; diagnostic text on timeout
	TimedOut  bool   // true if the child was killed at the timeout bound
	Truncated bool   // true if either stream exceeded the size cap
}
