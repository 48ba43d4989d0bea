package crime

type Code struct {
	Code         int    `json:"code"`
	IncidentType string `json:"incident_type"`
}

type Neighborhood struct {
	NeighborhoodNumber int    `json:"neighborhood_number"`
	NeighborhoodName   string `json:"neighborhood_name"`
}

type Incident struct {
	CaseNumber         string `json:"case_number"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	Code               int    `json:"code"`
	Incident           string `json:"incident"`
	PoliceGrid         int    `json:"police_grid"`
	NeighborhoodNumber int    `json:"neighborhood_number"`
	Block              string `json:"block"`
}

// DateTime is the stored timestamp layout, e.g. 2023-01-15T08:30:00.
func (i Incident) DateTime() string {
	return i.Date + "T" + i.Time
}

type ValidationError struct {
	Field   string
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

const (
	MsgMissingFields     = "Missing required field(s)"
	MsgInvalidFields     = "Invalid field(s)"
	MsgMissingCaseNumber = "Missing case_number"
)
