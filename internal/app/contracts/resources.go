package contracts

import (
	"context"
	"photodoc-service/internal/pkg/fhir_dto"
)

// ResourceRepository is the local store for the clinical resource graph:
// one upsert, one point lookup and one list per resource kind, keyed by
// resource id. Upserts overwrite whole documents, which keeps import and
// sync-pull idempotent. Point lookups return (nil, nil) on a miss.
type ResourceRepository interface {
	UpsertPractitioner(ctx context.Context, practitioner *fhir_dto.Practitioner) error
	FindPractitionerByID(ctx context.Context, id string) (*fhir_dto.Practitioner, error)
	ListPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, error)

	UpsertPatient(ctx context.Context, patient *fhir_dto.Patient) error
	FindPatientByID(ctx context.Context, id string) (*fhir_dto.Patient, error)
	ListPatients(ctx context.Context) ([]fhir_dto.Patient, error)

	UpsertDevice(ctx context.Context, device *fhir_dto.Device) error
	FindDeviceByID(ctx context.Context, id string) (*fhir_dto.Device, error)
	ListDevices(ctx context.Context) ([]fhir_dto.Device, error)

	UpsertEncounter(ctx context.Context, encounter *fhir_dto.Encounter) error
	FindEncounterByID(ctx context.Context, id string) (*fhir_dto.Encounter, error)
	ListEncounters(ctx context.Context) ([]fhir_dto.Encounter, error)

	UpsertDocumentReference(ctx context.Context, documentReference *fhir_dto.DocumentReference) error
	FindDocumentReferenceByID(ctx context.Context, id string) (*fhir_dto.DocumentReference, error)
	ListDocumentReferences(ctx context.Context) ([]fhir_dto.DocumentReference, error)
	ListDocumentReferencesByEncounterID(ctx context.Context, encounterID string) ([]fhir_dto.DocumentReference, error)

	UpsertQuestionnaireResponse(ctx context.Context, questionnaireResponse *fhir_dto.QuestionnaireResponse) error
	FindQuestionnaireResponseByID(ctx context.Context, id string) (*fhir_dto.QuestionnaireResponse, error)
	ListQuestionnaireResponses(ctx context.Context) ([]fhir_dto.QuestionnaireResponse, error)
	ListQuestionnaireResponsesByEncounterID(ctx context.Context, encounterID string) ([]fhir_dto.QuestionnaireResponse, error)

	UpsertProvenance(ctx context.Context, provenance *fhir_dto.Provenance) error
	FindProvenanceByID(ctx context.Context, id string) (*fhir_dto.Provenance, error)
	ListProvenances(ctx context.Context) ([]fhir_dto.Provenance, error)
	ListProvenancesByTargetID(ctx context.Context, targetID string) ([]fhir_dto.Provenance, error)
}
