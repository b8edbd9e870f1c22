package fhir_dto

type DocumentReference struct {
	ResourceType string                     `json:"resourceType"`
	ID           string                     `json:"id,omitempty"`
	Subject      Reference                  `json:"subject,omitempty"`
	Context      *DocumentReferenceContext  `json:"context,omitempty"`
	Date         string                     `json:"date,omitempty"`
	Description  string                     `json:"description,omitempty"`
	Content      []DocumentReferenceContent `json:"content,omitempty"`
}

type DocumentReferenceContext struct {
	Encounter []Reference `json:"encounter,omitempty"`
}

type DocumentReferenceContent struct {
	Attachment Attachment `json:"attachment"`
}

// AttachmentLocator returns the single attachment's locator, empty when the
// document carries no content.
func (d *DocumentReference) AttachmentLocator() string {
	if len(d.Content) == 0 {
		return ""
	}
	return d.Content[0].Attachment.Url
}

// EncounterID returns the referenced encounter id without its kind prefix.
func (d *DocumentReference) EncounterID() string {
	if d.Context == nil || len(d.Context.Encounter) == 0 {
		return ""
	}
	return StripReferencePrefix(d.Context.Encounter[0].Reference)
}
