package fhir_dto

// Binary carries photo bytes inside an export bundle. Its id is the base
// name of the attachment file it was read from; it is never stored
// long-term, the importer turns it back into a file and drops it.
type Binary struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	Data         string `json:"data,omitempty"`
}
