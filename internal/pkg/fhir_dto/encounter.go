package fhir_dto

type Encounter struct {
	ResourceType string                 `json:"resourceType"`
	ID           string                 `json:"id,omitempty"`
	Status       string                 `json:"status,omitempty"`
	Subject      Reference              `json:"subject,omitempty"`
	Participant  []EncounterParticipant `json:"participant,omitempty"`
	Period       *Period                `json:"period,omitempty"`
	Note         []Annotation           `json:"note,omitempty"`
}

type EncounterParticipant struct {
	Individual Reference `json:"individual,omitempty"`
}
