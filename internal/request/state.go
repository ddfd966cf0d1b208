package request

// Status is the lifecycle phase of a controller.
type Status int

const (
	Idle Status = iota
	Pending
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is a snapshot of a controller. Data is meaningful only when Status
// is Success; Err is non-empty only when Status is Failure.
type State[T any] struct {
	Status Status
	Data   T
	Err    string
	// Cause is the error the executor returned, kept for logging.
	Cause error
	// Token identifies the run that produced this state. Zero for idle.
	Token uint64
}

func (s State[T]) Done() bool {
	return s.Status == Success || s.Status == Failure
}
