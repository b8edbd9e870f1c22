package resources

import (
	"context"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/models"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResourceMongoRepository keeps one collection per resource kind. Every
// document carries the canonical serialized resource in Raw next to a few
// denormalized query fields, so round-trips are lossless even when the
// struct definitions lag behind the data.
type ResourceMongoRepository struct {
	Practitioners          *mongo.Collection
	Patients               *mongo.Collection
	Devices                *mongo.Collection
	Encounters             *mongo.Collection
	DocumentReferences     *mongo.Collection
	QuestionnaireResponses *mongo.Collection
	Provenances            *mongo.Collection
}

func NewResourceMongoRepository(client *mongo.Client, dbName string) contracts.ResourceRepository {
	db := client.Database(dbName)
	return &ResourceMongoRepository{
		Practitioners:          db.Collection(constvars.MongoCollectionPractitioners),
		Patients:               db.Collection(constvars.MongoCollectionPatients),
		Devices:                db.Collection(constvars.MongoCollectionDevices),
		Encounters:             db.Collection(constvars.MongoCollectionEncounters),
		DocumentReferences:     db.Collection(constvars.MongoCollectionDocumentReferences),
		QuestionnaireResponses: db.Collection(constvars.MongoCollectionQuestionnaireResponses),
		Provenances:            db.Collection(constvars.MongoCollectionProvenances),
	}
}

func upsertByID(ctx context.Context, collection *mongo.Collection, id string, document interface{}) error {
	_, err := collection.ReplaceOne(ctx, bson.M{"_id": id}, document, options.Replace().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpsertDocument(err)
	}
	return nil
}

func canonicalJSON(resource interface{}) (string, error) {
	raw, err := json.Marshal(resource)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}
	return string(raw), nil
}

func (r *ResourceMongoRepository) UpsertPractitioner(ctx context.Context, practitioner *fhir_dto.Practitioner) error {
	raw, err := canonicalJSON(practitioner)
	if err != nil {
		return err
	}
	document := &models.PractitionerDocument{
		ID:     practitioner.ID,
		Active: practitioner.Active,
		Raw:    raw,
	}
	if len(practitioner.Name) > 0 {
		document.Family = practitioner.Name[0].Family
		if len(practitioner.Name[0].Given) > 0 {
			document.Given = practitioner.Name[0].Given[0]
		}
	}
	return upsertByID(ctx, r.Practitioners, practitioner.ID, document)
}

func (r *ResourceMongoRepository) FindPractitionerByID(ctx context.Context, id string) (*fhir_dto.Practitioner, error) {
	var document models.PractitionerDocument
	err := r.Practitioners.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var practitioner fhir_dto.Practitioner
	if err := json.Unmarshal([]byte(document.Raw), &practitioner); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &practitioner, nil
}

func (r *ResourceMongoRepository) ListPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, error) {
	rawDocuments, err := listRaw(ctx, r.Practitioners)
	if err != nil {
		return nil, err
	}
	practitioners := make([]fhir_dto.Practitioner, 0, len(rawDocuments))
	for _, raw := range rawDocuments {
		var practitioner fhir_dto.Practitioner
		if err := json.Unmarshal([]byte(raw), &practitioner); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		practitioners = append(practitioners, practitioner)
	}
	return practitioners, nil
}

func (r *ResourceMongoRepository) UpsertPatient(ctx context.Context, patient *fhir_dto.Patient) error {
	raw, err := canonicalJSON(patient)
	if err != nil {
		return err
	}
	document := &models.PatientDocument{
		ID:        patient.ID,
		Family:    patient.FamilyName(),
		Given:     patient.GivenName(),
		BirthDate: patient.BirthDate,
		Gender:    patient.Gender,
		MRN:       patient.MRN(),
		Raw:       raw,
	}
	return upsertByID(ctx, r.Patients, patient.ID, document)
}

func (r *ResourceMongoRepository) FindPatientByID(ctx context.Context, id string) (*fhir_dto.Patient, error) {
	var document models.PatientDocument
	err := r.Patients.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var patient fhir_dto.Patient
	if err := json.Unmarshal([]byte(document.Raw), &patient); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &patient, nil
}

func (r *ResourceMongoRepository) ListPatients(ctx context.Context) ([]fhir_dto.Patient, error) {
	rawDocuments, err := listRaw(ctx, r.Patients)
	if err != nil {
		return nil, err
	}
	patients := make([]fhir_dto.Patient, 0, len(rawDocuments))
	for _, raw := range rawDocuments {
		var patient fhir_dto.Patient
		if err := json.Unmarshal([]byte(raw), &patient); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		patients = append(patients, patient)
	}
	return patients, nil
}

func (r *ResourceMongoRepository) UpsertDevice(ctx context.Context, device *fhir_dto.Device) error {
	raw, err := canonicalJSON(device)
	if err != nil {
		return err
	}
	document := &models.DeviceDocument{
		ID:           device.ID,
		ModelNumber:  device.ModelNumber,
		Manufacturer: device.Manufacturer,
		Raw:          raw,
	}
	return upsertByID(ctx, r.Devices, device.ID, document)
}

func (r *ResourceMongoRepository) FindDeviceByID(ctx context.Context, id string) (*fhir_dto.Device, error) {
	var document models.DeviceDocument
	err := r.Devices.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var device fhir_dto.Device
	if err := json.Unmarshal([]byte(document.Raw), &device); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &device, nil
}

func (r *ResourceMongoRepository) ListDevices(ctx context.Context) ([]fhir_dto.Device, error) {
	rawDocuments, err := listRaw(ctx, r.Devices)
	if err != nil {
		return nil, err
	}
	devices := make([]fhir_dto.Device, 0, len(rawDocuments))
	for _, raw := range rawDocuments {
		var device fhir_dto.Device
		if err := json.Unmarshal([]byte(raw), &device); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		devices = append(devices, device)
	}
	return devices, nil
}

func (r *ResourceMongoRepository) UpsertEncounter(ctx context.Context, encounter *fhir_dto.Encounter) error {
	raw, err := canonicalJSON(encounter)
	if err != nil {
		return err
	}
	document := &models.EncounterDocument{
		ID:        encounter.ID,
		Status:    encounter.Status,
		PatientID: fhir_dto.StripReferencePrefix(encounter.Subject.Reference),
		Raw:       raw,
	}
	if len(encounter.Participant) > 0 {
		document.PractitionerID = fhir_dto.StripReferencePrefix(encounter.Participant[0].Individual.Reference)
	}
	if encounter.Period != nil {
		document.PeriodStart = encounter.Period.Start
	}
	return upsertByID(ctx, r.Encounters, encounter.ID, document)
}

func (r *ResourceMongoRepository) FindEncounterByID(ctx context.Context, id string) (*fhir_dto.Encounter, error) {
	var document models.EncounterDocument
	err := r.Encounters.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var encounter fhir_dto.Encounter
	if err := json.Unmarshal([]byte(document.Raw), &encounter); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &encounter, nil
}

func (r *ResourceMongoRepository) ListEncounters(ctx context.Context) ([]fhir_dto.Encounter, error) {
	rawDocuments, err := listRaw(ctx, r.Encounters)
	if err != nil {
		return nil, err
	}
	encounters := make([]fhir_dto.Encounter, 0, len(rawDocuments))
	for _, raw := range rawDocuments {
		var encounter fhir_dto.Encounter
		if err := json.Unmarshal([]byte(raw), &encounter); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		encounters = append(encounters, encounter)
	}
	return encounters, nil
}

func (r *ResourceMongoRepository) UpsertDocumentReference(ctx context.Context, documentReference *fhir_dto.DocumentReference) error {
	raw, err := canonicalJSON(documentReference)
	if err != nil {
		return err
	}
	document := &models.DocumentReferenceDocument{
		ID:          documentReference.ID,
		PatientID:   fhir_dto.StripReferencePrefix(documentReference.Subject.Reference),
		EncounterID: documentReference.EncounterID(),
		Date:        documentReference.Date,
		Raw:         raw,
	}
	return upsertByID(ctx, r.DocumentReferences, documentReference.ID, document)
}

func (r *ResourceMongoRepository) FindDocumentReferenceByID(ctx context.Context, id string) (*fhir_dto.DocumentReference, error) {
	var document models.DocumentReferenceDocument
	err := r.DocumentReferences.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var documentReference fhir_dto.DocumentReference
	if err := json.Unmarshal([]byte(document.Raw), &documentReference); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &documentReference, nil
}

func (r *ResourceMongoRepository) ListDocumentReferences(ctx context.Context) ([]fhir_dto.DocumentReference, error) {
	return r.listDocumentReferences(ctx, bson.M{})
}

func (r *ResourceMongoRepository) ListDocumentReferencesByEncounterID(ctx context.Context, encounterID string) ([]fhir_dto.DocumentReference, error) {
	return r.listDocumentReferences(ctx, bson.M{"encounterId": encounterID})
}

func (r *ResourceMongoRepository) listDocumentReferences(ctx context.Context, filter bson.M) ([]fhir_dto.DocumentReference, error) {
	rawDocuments, err := listRawFiltered(ctx, r.DocumentReferences, filter)
	if err != nil {
		return nil, err
	}
	documentReferences := make([]fhir_dto.DocumentReference, 0, len(rawDocuments))
	for _, raw := range rawDocuments {
		var documentReference fhir_dto.DocumentReference
		if err := json.Unmarshal([]byte(raw), &documentReference); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		documentReferences = append(documentReferences, documentReference)
	}
	return documentReferences, nil
}

func (r *ResourceMongoRepository) UpsertQuestionnaireResponse(ctx context.Context, questionnaireResponse *fhir_dto.QuestionnaireResponse) error {
	raw, err := canonicalJSON(questionnaireResponse)
	if err != nil {
		return err
	}
	document := &models.QuestionnaireResponseDocument{
		ID:        questionnaireResponse.ID,
		Status:    questionnaireResponse.Status,
		PatientID: fhir_dto.StripReferencePrefix(questionnaireResponse.Subject.Reference),
		Authored:  questionnaireResponse.Authored,
		Raw:       raw,
	}
	if questionnaireResponse.Encounter != nil {
		document.EncounterID = fhir_dto.StripReferencePrefix(questionnaireResponse.Encounter.Reference)
	}
	return upsertByID(ctx, r.QuestionnaireResponses, questionnaireResponse.ID, document)
}

func (r *ResourceMongoRepository) FindQuestionnaireResponseByID(ctx context.Context, id string) (*fhir_dto.QuestionnaireResponse, error) {
	var document models.QuestionnaireResponseDocument
	err := r.QuestionnaireResponses.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var questionnaireResponse fhir_dto.QuestionnaireResponse
	if err := json.Unmarshal([]byte(document.Raw), &questionnaireResponse); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &questionnaireResponse, nil
}

func (r *ResourceMongoRepository) ListQuestionnaireResponses(ctx context.Context) ([]fhir_dto.QuestionnaireResponse, error) {
	return r.listQuestionnaireResponses(ctx, bson.M{})
}

func (r *ResourceMongoRepository) ListQuestionnaireResponsesByEncounterID(ctx context.Context, encounterID string) ([]fhir_dto.QuestionnaireResponse, error) {
	return r.listQuestionnaireResponses(ctx, bson.M{"encounterId": encounterID})
}

func (r *ResourceMongoRepository) listQuestionnaireResponses(ctx context.Context, filter bson.M) ([]fhir_dto.QuestionnaireResponse, error) {
	rawDocuments, err := listRawFiltered(ctx, r.QuestionnaireResponses, filter)
	if err != nil {
		return nil, err
	}
	questionnaireResponses := make([]fhir_dto.QuestionnaireResponse, 0, len(rawDocuments))
	for _, raw := range rawDocuments {
		var questionnaireResponse fhir_dto.QuestionnaireResponse
		if err := json.Unmarshal([]byte(raw), &questionnaireResponse); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		questionnaireResponses = append(questionnaireResponses, questionnaireResponse)
	}
	return questionnaireResponses, nil
}

func (r *ResourceMongoRepository) UpsertProvenance(ctx context.Context, provenance *fhir_dto.Provenance) error {
	raw, err := canonicalJSON(provenance)
	if err != nil {
		return err
	}
	document := &models.ProvenanceDocument{
		ID:       provenance.ID,
		TargetID: provenance.TargetID(),
		Recorded: provenance.Recorded,
		Raw:      raw,
	}
	return upsertByID(ctx, r.Provenances, provenance.ID, document)
}

func (r *ResourceMongoRepository) FindProvenanceByID(ctx context.Context, id string) (*fhir_dto.Provenance, error) {
	var document models.ProvenanceDocument
	err := r.Provenances.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var provenance fhir_dto.Provenance
	if err := json.Unmarshal([]byte(document.Raw), &provenance); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &provenance, nil
}

func (r *ResourceMongoRepository) ListProvenances(ctx context.Context) ([]fhir_dto.Provenance, error) {
	return r.listProvenances(ctx, bson.M{})
}

func (r *ResourceMongoRepository) ListProvenancesByTargetID(ctx context.Context, targetID string) ([]fhir_dto.Provenance, error) {
	return r.listProvenances(ctx, bson.M{"targetId": targetID})
}

func (r *ResourceMongoRepository) listProvenances(ctx context.Context, filter bson.M) ([]fhir_dto.Provenance, error) {
	rawDocuments, err := listRawFiltered(ctx, r.Provenances, filter)
	if err != nil {
		return nil, err
	}
	provenances := make([]fhir_dto.Provenance, 0, len(rawDocuments))
	for _, raw := range rawDocuments {
		var provenance fhir_dto.Provenance
		if err := json.Unmarshal([]byte(raw), &provenance); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		provenances = append(provenances, provenance)
	}
	return provenances, nil
}

func listRaw(ctx context.Context, collection *mongo.Collection) ([]string, error) {
	return listRawFiltered(ctx, collection, bson.M{})
}

// listRawFiltered pulls only the Raw field, sorted by id so bundle entry
// order is stable across exports.
func listRawFiltered(ctx context.Context, collection *mongo.Collection, filter bson.M) ([]string, error) {
	findOptions := options.Find().
		SetProjection(bson.M{"raw": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var rawDocuments []string
	for cursor.Next(ctx) {
		var document struct {
			Raw string `bson:"raw"`
		}
		if err := cursor.Decode(&document); err != nil {
			return nil, exceptions.ErrMongoDBFindDocument(err)
		}
		rawDocuments = append(rawDocuments, document.Raw)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return rawDocuments, nil
}
