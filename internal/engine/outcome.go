package engine

// Status classifies what happened to one asset.
type Status string

const (
	// StatusUpdated means at least one field actually changed.
	StatusUpdated Status = "updated"
	// StatusNoOp means no field differed from its target value.
	StatusNoOp Status = "no-op"
	// StatusFailed means the asset's update stopped on an error; Fields
	// lists any steps that had already been applied.
	StatusFailed Status = "failed"
)

// Fields an operation can change.
const (
	FieldDateTime = "local date-time"
	FieldTimezone = "timezone"
	FieldExif     = "exif metadata"
)

// Outcome is the per-asset result of one Apply.
type Outcome struct {
	UUID   string
	Status Status
	Fields []string // fields applied, in application order
	Notes  []string // reported skips (missing original, unusable metadata)
	Err    error
}

func (o *Outcome) changed(field string) {
	o.Fields = append(o.Fields, field)
	o.Status = StatusUpdated
}

func (o *Outcome) note(msg string) {
	o.Notes = append(o.Notes, msg)
}

func (o Outcome) failed(err error) Outcome {
	o.Status = StatusFailed
	o.Err = err
	return o
}

// Summary is the batch-level tally, distinguishing partial success from
// total success or total failure.
type Summary struct {
	Updated int
	NoOp    int
	Failed  int
}

// Summarize tallies a batch of outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusUpdated:
			s.Updated++
		case StatusFailed:
			s.Failed++
		default:
			s.NoOp++
		}
	}
	return s
}

// TotalFailure reports whether every asset in a non-empty batch failed.
func (s Summary) TotalFailure() bool {
	return s.Failed > 0 && s.Updated == 0 && s.NoOp == 0
}
