package exportimport

import (
	"context"
	"encoding/base64"
	"fmt"
	"photodoc-service/internal/app/services/bundles"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/fhir_dto"
	"photodoc-service/internal/pkg/streamcipher"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResourceRepository struct {
	practitioners          map[string]fhir_dto.Practitioner
	patients               map[string]fhir_dto.Patient
	devices                map[string]fhir_dto.Device
	encounters             map[string]fhir_dto.Encounter
	documentReferences     map[string]fhir_dto.DocumentReference
	questionnaireResponses map[string]fhir_dto.QuestionnaireResponse
	provenances            map[string]fhir_dto.Provenance
}

func newFakeResourceRepository() *fakeResourceRepository {
	return &fakeResourceRepository{
		practitioners:          make(map[string]fhir_dto.Practitioner),
		patients:               make(map[string]fhir_dto.Patient),
		devices:                make(map[string]fhir_dto.Device),
		encounters:             make(map[string]fhir_dto.Encounter),
		documentReferences:     make(map[string]fhir_dto.DocumentReference),
		questionnaireResponses: make(map[string]fhir_dto.QuestionnaireResponse),
		provenances:            make(map[string]fhir_dto.Provenance),
	}
}

func sortedValues[T any](byID map[string]T) []T {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	values := make([]T, 0, len(ids))
	for _, id := range ids {
		values = append(values, byID[id])
	}
	return values
}

func (f *fakeResourceRepository) UpsertPractitioner(_ context.Context, p *fhir_dto.Practitioner) error {
	f.practitioners[p.ID] = *p
	return nil
}
func (f *fakeResourceRepository) FindPractitionerByID(_ context.Context, id string) (*fhir_dto.Practitioner, error) {
	if p, ok := f.practitioners[id]; ok {
		return &p, nil
	}
	return nil, nil
}
func (f *fakeResourceRepository) ListPractitioners(_ context.Context) ([]fhir_dto.Practitioner, error) {
	return sortedValues(f.practitioners), nil
}

func (f *fakeResourceRepository) UpsertPatient(_ context.Context, p *fhir_dto.Patient) error {
	f.patients[p.ID] = *p
	return nil
}
func (f *fakeResourceRepository) FindPatientByID(_ context.Context, id string) (*fhir_dto.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return &p, nil
	}
	return nil, nil
}
func (f *fakeResourceRepository) ListPatients(_ context.Context) ([]fhir_dto.Patient, error) {
	return sortedValues(f.patients), nil
}

func (f *fakeResourceRepository) UpsertDevice(_ context.Context, d *fhir_dto.Device) error {
	f.devices[d.ID] = *d
	return nil
}
func (f *fakeResourceRepository) FindDeviceByID(_ context.Context, id string) (*fhir_dto.Device, error) {
	if d, ok := f.devices[id]; ok {
		return &d, nil
	}
	return nil, nil
}
func (f *fakeResourceRepository) ListDevices(_ context.Context) ([]fhir_dto.Device, error) {
	return sortedValues(f.devices), nil
}

func (f *fakeResourceRepository) UpsertEncounter(_ context.Context, e *fhir_dto.Encounter) error {
	f.encounters[e.ID] = *e
	return nil
}
func (f *fakeResourceRepository) FindEncounterByID(_ context.Context, id string) (*fhir_dto.Encounter, error) {
	if e, ok := f.encounters[id]; ok {
		return &e, nil
	}
	return nil, nil
}
func (f *fakeResourceRepository) ListEncounters(_ context.Context) ([]fhir_dto.Encounter, error) {
	return sortedValues(f.encounters), nil
}

func (f *fakeResourceRepository) UpsertDocumentReference(_ context.Context, d *fhir_dto.DocumentReference) error {
	f.documentReferences[d.ID] = *d
	return nil
}
func (f *fakeResourceRepository) FindDocumentReferenceByID(_ context.Context, id string) (*fhir_dto.DocumentReference, error) {
	if d, ok := f.documentReferences[id]; ok {
		return &d, nil
	}
	return nil, nil
}
func (f *fakeResourceRepository) ListDocumentReferences(_ context.Context) ([]fhir_dto.DocumentReference, error) {
	return sortedValues(f.documentReferences), nil
}
func (f *fakeResourceRepository) ListDocumentReferencesByEncounterID(_ context.Context, encounterID string) ([]fhir_dto.DocumentReference, error) {
	var matches []fhir_dto.DocumentReference
	for _, d := range sortedValues(f.documentReferences) {
		if d.EncounterID() == encounterID {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

func (f *fakeResourceRepository) UpsertQuestionnaireResponse(_ context.Context, q *fhir_dto.QuestionnaireResponse) error {
	f.questionnaireResponses[q.ID] = *q
	return nil
}
func (f *fakeResourceRepository) FindQuestionnaireResponseByID(_ context.Context, id string) (*fhir_dto.QuestionnaireResponse, error) {
	if q, ok := f.questionnaireResponses[id]; ok {
		return &q, nil
	}
	return nil, nil
}
func (f *fakeResourceRepository) ListQuestionnaireResponses(_ context.Context) ([]fhir_dto.QuestionnaireResponse, error) {
	return sortedValues(f.questionnaireResponses), nil
}
func (f *fakeResourceRepository) ListQuestionnaireResponsesByEncounterID(_ context.Context, encounterID string) ([]fhir_dto.QuestionnaireResponse, error) {
	var matches []fhir_dto.QuestionnaireResponse
	for _, q := range sortedValues(f.questionnaireResponses) {
		if q.Encounter != nil && fhir_dto.StripReferencePrefix(q.Encounter.Reference) == encounterID {
			matches = append(matches, q)
		}
	}
	return matches, nil
}

func (f *fakeResourceRepository) UpsertProvenance(_ context.Context, p *fhir_dto.Provenance) error {
	f.provenances[p.ID] = *p
	return nil
}
func (f *fakeResourceRepository) FindProvenanceByID(_ context.Context, id string) (*fhir_dto.Provenance, error) {
	if p, ok := f.provenances[id]; ok {
		return &p, nil
	}
	return nil, nil
}
func (f *fakeResourceRepository) ListProvenances(_ context.Context) ([]fhir_dto.Provenance, error) {
	return sortedValues(f.provenances), nil
}
func (f *fakeResourceRepository) ListProvenancesByTargetID(_ context.Context, targetID string) ([]fhir_dto.Provenance, error) {
	var matches []fhir_dto.Provenance
	for _, p := range sortedValues(f.provenances) {
		if p.TargetID() == targetID {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

type fakeAttachmentStorage struct {
	files      map[string][]byte
	writeCalls int
}

func newFakeAttachmentStorage() *fakeAttachmentStorage {
	return &fakeAttachmentStorage{files: make(map[string][]byte)}
}

func (f *fakeAttachmentStorage) Read(_ context.Context, locator string) ([]byte, error) {
	data, ok := f.files[locator]
	if !ok {
		return nil, fmt.Errorf("no attachment at %s", locator)
	}
	return data, nil
}

func (f *fakeAttachmentStorage) Write(_ context.Context, name, _ string, data []byte) (string, error) {
	f.writeCalls++
	locator := "/imported/" + name
	f.files[locator] = data
	return locator, nil
}

func seedGraph(t *testing.T, repo *fakeResourceRepository, storage *fakeAttachmentStorage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.UpsertDevice(ctx, &fhir_dto.Device{
		ResourceType: constvars.ResourceDevice, ID: "dev1", ModelNumber: "SM-G991B", Manufacturer: "Samsung",
	}))
	require.NoError(t, repo.UpsertPractitioner(ctx, &fhir_dto.Practitioner{
		ResourceType: constvars.ResourcePractitioner, ID: "pr1", Active: true,
		Name: []fhir_dto.HumanName{{Family: "House", Given: []string{"Gregory"}}},
	}))
	require.NoError(t, repo.UpsertPatient(ctx, &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient, ID: "pat1",
		Name:       []fhir_dto.HumanName{{Family: "Doe", Given: []string{"Jane"}}},
		Identifier: []fhir_dto.Identifier{{Value: "MRN-001"}},
	}))
	require.NoError(t, repo.UpsertEncounter(ctx, &fhir_dto.Encounter{
		ResourceType: constvars.ResourceEncounter, ID: "enc1",
		Status:  constvars.FhirEncounterStatusFinished,
		Subject: fhir_dto.Reference{Reference: "Patient/pat1"},
		Participant: []fhir_dto.EncounterParticipant{
			{Individual: fhir_dto.Reference{Reference: "Practitioner/pr1"}},
		},
	}))

	storage.files["/photos/wound.jpg"] = []byte{0xff, 0xd8, 0xff, 0xe0}
	require.NoError(t, repo.UpsertDocumentReference(ctx, &fhir_dto.DocumentReference{
		ResourceType: constvars.ResourceDocumentReference, ID: "doc1",
		Subject: fhir_dto.Reference{Reference: "Patient/pat1"},
		Context: &fhir_dto.DocumentReferenceContext{
			Encounter: []fhir_dto.Reference{{Reference: "Encounter/enc1"}},
		},
		Content: []fhir_dto.DocumentReferenceContent{
			{Attachment: fhir_dto.Attachment{ContentType: "image/jpeg", Url: "/photos/wound.jpg", Title: "wound.jpg"}},
		},
	}))

	require.NoError(t, repo.UpsertQuestionnaireResponse(ctx, &fhir_dto.QuestionnaireResponse{
		ResourceType: constvars.ResourceQuestionnaireResponse, ID: "qr1",
		Status:    constvars.FhirQuestionnaireResponseStatusCompleted,
		Subject:   fhir_dto.Reference{Reference: "Patient/pat1"},
		Encounter: &fhir_dto.Reference{Reference: "Encounter/enc1"},
	}))
	require.NoError(t, repo.UpsertProvenance(ctx, &fhir_dto.Provenance{
		ResourceType: constvars.ResourceProvenance, ID: "prov1",
		Target:   []fhir_dto.Reference{{Reference: "Encounter/enc1"}},
		Recorded: "2024-03-01T10:00:00Z",
	}))
}

func TestExport(t *testing.T) {
	t.Run("Emits resources in dependency order with binaries trailing their references", func(t *testing.T) {
		repo := newFakeResourceRepository()
		storage := newFakeAttachmentStorage()
		seedGraph(t, repo, storage)
		uc := NewExchangeUsecase(repo, storage, zap.NewNop())

		encoded, err := uc.Export(context.Background(), "secret")
		require.NoError(t, err)

		ciphertext, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		bundle, err := bundles.Parse(streamcipher.Decrypt(ciphertext, "secret"))
		require.NoError(t, err)

		kinds := make([]string, 0, len(bundle.Entry))
		for _, entry := range bundle.Entry {
			kinds = append(kinds, entry.Kind())
		}
		assert.Equal(t, []string{
			constvars.ResourceDevice,
			constvars.ResourcePractitioner,
			constvars.ResourcePatient,
			constvars.ResourceEncounter,
			constvars.ResourceDocumentReference,
			constvars.ResourceBinary,
			constvars.ResourceQuestionnaireResponse,
			constvars.ResourceProvenance,
		}, kinds)
		assert.Equal(t, constvars.BundleTypeCollection, bundle.Type)
		assert.Equal(t, len(bundle.Entry), bundle.Total)
	})

	t.Run("Skips the binary when its attachment cannot be read", func(t *testing.T) {
		repo := newFakeResourceRepository()
		storage := newFakeAttachmentStorage()
		seedGraph(t, repo, storage)
		delete(storage.files, "/photos/wound.jpg")
		uc := NewExchangeUsecase(repo, storage, zap.NewNop())

		encoded, err := uc.Export(context.Background(), "secret")
		require.NoError(t, err)

		ciphertext, _ := base64.StdEncoding.DecodeString(encoded)
		bundle, err := bundles.Parse(streamcipher.Decrypt(ciphertext, "secret"))
		require.NoError(t, err)

		sawDocumentReference := false
		for _, entry := range bundle.Entry {
			assert.NotEqual(t, constvars.ResourceBinary, entry.Kind())
			if entry.Kind() == constvars.ResourceDocumentReference {
				sawDocumentReference = true
			}
		}
		assert.True(t, sawDocumentReference)
	})
}

func TestImport(t *testing.T) {
	t.Run("Round-trips the full graph and rewrites attachment locators", func(t *testing.T) {
		sourceRepo := newFakeResourceRepository()
		sourceStorage := newFakeAttachmentStorage()
		seedGraph(t, sourceRepo, sourceStorage)
		exporter := NewExchangeUsecase(sourceRepo, sourceStorage, zap.NewNop())

		encoded, err := exporter.Export(context.Background(), "secret")
		require.NoError(t, err)

		targetRepo := newFakeResourceRepository()
		targetStorage := newFakeAttachmentStorage()
		importer := NewExchangeUsecase(targetRepo, targetStorage, zap.NewNop())
		require.NoError(t, importer.Import(context.Background(), encoded, "secret"))

		assert.Len(t, targetRepo.patients, 1)
		assert.Len(t, targetRepo.encounters, 1)
		assert.Len(t, targetRepo.provenances, 1)
		assert.Len(t, targetRepo.questionnaireResponses, 1)

		imported, err := targetRepo.FindDocumentReferenceByID(context.Background(), "doc1")
		require.NoError(t, err)
		require.NotNil(t, imported)
		assert.Equal(t, "/imported/wound.jpg", imported.AttachmentLocator())
		assert.Equal(t, []byte{0xff, 0xd8, 0xff, 0xe0}, targetStorage.files["/imported/wound.jpg"])
	})

	t.Run("Works with an empty password", func(t *testing.T) {
		sourceRepo := newFakeResourceRepository()
		sourceStorage := newFakeAttachmentStorage()
		seedGraph(t, sourceRepo, sourceStorage)
		exporter := NewExchangeUsecase(sourceRepo, sourceStorage, zap.NewNop())

		encoded, err := exporter.Export(context.Background(), "")
		require.NoError(t, err)

		targetRepo := newFakeResourceRepository()
		importer := NewExchangeUsecase(targetRepo, newFakeAttachmentStorage(), zap.NewNop())
		require.NoError(t, importer.Import(context.Background(), encoded, ""))
		assert.Len(t, targetRepo.patients, 1)
	})

	t.Run("Fails closed on a wrong password without writing anything", func(t *testing.T) {
		sourceRepo := newFakeResourceRepository()
		sourceStorage := newFakeAttachmentStorage()
		seedGraph(t, sourceRepo, sourceStorage)
		exporter := NewExchangeUsecase(sourceRepo, sourceStorage, zap.NewNop())

		encoded, err := exporter.Export(context.Background(), "secret")
		require.NoError(t, err)

		targetRepo := newFakeResourceRepository()
		targetStorage := newFakeAttachmentStorage()
		importer := NewExchangeUsecase(targetRepo, targetStorage, zap.NewNop())

		err = importer.Import(context.Background(), encoded, "not-the-password")
		assert.Error(t, err)
		assert.Empty(t, targetRepo.patients)
		assert.Zero(t, targetStorage.writeCalls)
	})

	t.Run("Rejects data that is not base64", func(t *testing.T) {
		importer := NewExchangeUsecase(newFakeResourceRepository(), newFakeAttachmentStorage(), zap.NewNop())
		err := importer.Import(context.Background(), "%%% not base64 %%%", "secret")
		assert.Error(t, err)
	})

	t.Run("Ignores unknown resource kinds", func(t *testing.T) {
		entry, err := bundles.NewEntry(map[string]string{"resourceType": "Observation", "id": "obs1"})
		require.NoError(t, err)
		patientEntry, err := bundles.NewEntry(&fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "pat9"})
		require.NoError(t, err)

		data, err := bundles.Serialize(bundles.NewCollectionBundle([]fhir_dto.Entry{entry, patientEntry}))
		require.NoError(t, err)
		encoded := base64.StdEncoding.EncodeToString(streamcipher.Encrypt(data, "pw"))

		repo := newFakeResourceRepository()
		importer := NewExchangeUsecase(repo, newFakeAttachmentStorage(), zap.NewNop())
		require.NoError(t, importer.Import(context.Background(), encoded, "pw"))
		assert.Len(t, repo.patients, 1)
	})
}
