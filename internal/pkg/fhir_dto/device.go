package fhir_dto

type Device struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id,omitempty"`
	ModelNumber  string `json:"modelNumber,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
}
