package requests

type FetchPatientHistory struct {
	LastUpdated string `json:"last_updated,omitempty"`
}
