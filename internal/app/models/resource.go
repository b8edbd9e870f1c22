package models

// One document per resource, one collection per kind. Raw carries the
// canonical serialized resource for lossless round-tripping; the remaining
// fields are denormalized for querying and never authoritative.

type PractitionerDocument struct {
	ID     string `bson:"_id"`
	Active bool   `bson:"active"`
	Family string `bson:"family,omitempty"`
	Given  string `bson:"given,omitempty"`
	Raw    string `bson:"raw"`
}

type PatientDocument struct {
	ID        string `bson:"_id"`
	Family    string `bson:"family,omitempty"`
	Given     string `bson:"given,omitempty"`
	BirthDate string `bson:"birthDate,omitempty"`
	Gender    string `bson:"gender,omitempty"`
	MRN       string `bson:"mrn,omitempty"`
	Raw       string `bson:"raw"`
}

type DeviceDocument struct {
	ID           string `bson:"_id"`
	ModelNumber  string `bson:"modelNumber,omitempty"`
	Manufacturer string `bson:"manufacturer,omitempty"`
	Raw          string `bson:"raw"`
}

type EncounterDocument struct {
	ID             string `bson:"_id"`
	Status         string `bson:"status,omitempty"`
	PatientID      string `bson:"patientId,omitempty"`
	PractitionerID string `bson:"practitionerId,omitempty"`
	PeriodStart    string `bson:"periodStart,omitempty"`
	Raw            string `bson:"raw"`
}

type DocumentReferenceDocument struct {
	ID          string `bson:"_id"`
	PatientID   string `bson:"patientId,omitempty"`
	EncounterID string `bson:"encounterId,omitempty"`
	Date        string `bson:"date,omitempty"`
	Raw         string `bson:"raw"`
}

type QuestionnaireResponseDocument struct {
	ID          string `bson:"_id"`
	Status      string `bson:"status,omitempty"`
	PatientID   string `bson:"patientId,omitempty"`
	EncounterID string `bson:"encounterId,omitempty"`
	Authored    string `bson:"authored,omitempty"`
	Raw         string `bson:"raw"`
}

type ProvenanceDocument struct {
	ID       string `bson:"_id"`
	TargetID string `bson:"targetId,omitempty"`
	Recorded string `bson:"recorded,omitempty"`
	Raw      string `bson:"raw"`
}
