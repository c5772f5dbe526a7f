package jobs

// OngoingPlaceholder is shown in place of a missing end date.
const OngoingPlaceholder = "Anställning pågående"

// Job is one employment period stored in the cv table.
type Job struct {
	ID          int64
	Company     string
	Title       string
	Description string
	StartDate   string
	// EndDate is nil while the employment is ongoing.
	EndDate *string
}

// EndDateText returns the end date or the ongoing placeholder.
func (j Job) EndDateText() string {
	if j.EndDate == nil || *j.EndDate == "" {
		return OngoingPlaceholder
	}
	return *j.EndDate
}
