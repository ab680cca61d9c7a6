package model

// FailureKind classifies a filesystem failure.
type FailureKind int

const (
	// FailureNone means the operation succeeded.
	FailureNone FailureKind = iota
	// FailureNotFound means a path involved in the operation does not exist.
	FailureNotFound
	// FailureAlreadyExists means the target of the operation already exists.
	FailureAlreadyExists
	// FailureOther covers every other I/O failure.
	FailureOther
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNotFound:
		return "not_found"
	case FailureAlreadyExists:
		return "already_exists"
	case FailureOther:
		return "other"
	default:
		return "unknown"
	}
}

// Outcome is the settled result of a single file conversion.
type Outcome int

const (
	// Converted indicates the file was moved into its pod.
	Converted Outcome = iota
	// Declined indicates the confirmation gate refused the conversion.
	Declined
	// Skipped indicates a tolerated condition prevented the move.
	Skipped
	// Failed indicates an unexpected filesystem error prevented the move.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Converted:
		return "converted"
	case Declined:
		return "declined"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunSummary counts the outcomes of a run.
type RunSummary struct {
	Converted int
	Declined  int
	Skipped   int
	Failed    int
}

// Add records one outcome.
func (s *RunSummary) Add(o Outcome) {
	switch o {
	case Converted:
		s.Converted++
	case Declined:
		s.Declined++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
	}
}

// Total returns the number of recorded outcomes.
func (s RunSummary) Total() int {
	return s.Converted + s.Declined + s.Skipped + s.Failed
}
