package jobs

// Input is the request body accepted by create and update.
// Employer is an alias for Company.
type Input struct {
	Company     string  `json:"company"`
	Employer    string  `json:"employer"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// Row is a stored job as returned by the list and get endpoints.
type Row struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Echo mirrors the submitted job back to the caller.
type Echo struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// MutationResult reports the outcome of an update or delete statement.
type MutationResult struct {
	AffectedRows int64 `json:"affectedRows"`
}

type createResponse struct {
	Message string `json:"message"`
	Job     Echo   `json:"job"`
}

type updateResponse struct {
	Message string         `json:"message"`
	Job     Echo           `json:"job"`
	Result  MutationResult `json:"result"`
}

type deleteResponse struct {
	Message string         `json:"message"`
	Result  MutationResult `json:"result"`
}

type welcomeResponse struct {
	Message string `json:"message"`
}

func toRow(j Job) Row {
	return Row{
		ID:          j.ID,
		Company:     j.Company,
		Title:       j.Title,
		Description: j.Description,
		StartDate:   j.StartDate,
		EndDate:     j.EndDateText(),
	}
}

func toRows(list []Job) []Row {
	out := make([]Row, 0, len(list))
	for _, j := range list {
		out = append(out, toRow(j))
	}
	return out
}

func toEcho(j Job) Echo {
	return Echo{
		Company:     j.Company,
		Title:       j.Title,
		Description: j.Description,
		StartDate:   j.StartDate,
		EndDate:     j.EndDateText(),
	}
}
