package checkout

type Status string

const (
	StatusIdle            Status = "IDLE"
	StatusHeaderCreating  Status = "HEADER_CREATING"
	StatusLinesSubmitting Status = "LINES_SUBMITTING"
	StatusSucceeded       Status = "SUCCEEDED"
	StatusFailed          Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
