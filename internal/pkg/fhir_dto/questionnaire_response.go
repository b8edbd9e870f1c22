package fhir_dto

type QuestionnaireResponse struct {
	ResourceType  string                      `json:"resourceType"`
	ID            string                      `json:"id,omitempty"`
	Status        string                      `json:"status,omitempty"`
	Questionnaire string                      `json:"questionnaire,omitempty"`
	Subject       Reference                   `json:"subject,omitempty"`
	Encounter     *Reference                  `json:"encounter,omitempty"`
	Authored      string                      `json:"authored,omitempty"`
	Item          []QuestionnaireResponseItem `json:"item,omitempty"`
}

type QuestionnaireResponseItem struct {
	LinkID string                            `json:"linkId"`
	Answer []QuestionnaireResponseItemAnswer `json:"answer,omitempty"`
}

type QuestionnaireResponseItemAnswer struct {
	ValueString     *string     `json:"valueString,omitempty"`
	ValueBoolean    *bool       `json:"valueBoolean,omitempty"`
	ValueAttachment *Attachment `json:"valueAttachment,omitempty"`
}
