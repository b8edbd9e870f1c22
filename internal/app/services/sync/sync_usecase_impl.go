package sync

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/services/bundles"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// SyncUsecase pushes finished encounters to the remote endpoint and pulls
// a patient's remote history back into the local store. Both operations
// report plain success or failure; a failed push is parked on the retry
// queue instead of being rolled back.
type SyncUsecase struct {
	ResourceRepository contracts.ResourceRepository
	AttachmentStorage  contracts.AttachmentStorage
	RemoteClient       contracts.RemoteFhirClient
	RetryQueue         contracts.SyncRetryQueue
	Log                *zap.Logger
}

func NewSyncUsecase(
	resourceRepository contracts.ResourceRepository,
	attachmentStorage contracts.AttachmentStorage,
	remoteClient contracts.RemoteFhirClient,
	retryQueue contracts.SyncRetryQueue,
	log *zap.Logger,
) contracts.SyncUsecase {
	return &SyncUsecase{
		ResourceRepository: resourceRepository,
		AttachmentStorage:  attachmentStorage,
		RemoteClient:       remoteClient,
		RetryQueue:         retryQueue,
		Log:                log,
	}
}

// PushEncounter assembles a transaction bundle covering the encounter and
// everything hanging off it, then posts it with per-entry PUT directives so
// a replay is a no-op on the remote side.
func (uc *SyncUsecase) PushEncounter(ctx context.Context, encounterID string) bool {
	bundle, err := uc.buildEncounterBundle(ctx, encounterID)
	if err != nil {
		uc.Log.Error("syncUsecase.PushEncounter cannot assemble bundle",
			zap.String(constvars.LoggingEncounterIDKey, encounterID),
			zap.Error(err),
		)
		return false
	}

	if err := uc.RemoteClient.PostTransactionBundle(ctx, bundle); err != nil {
		uc.Log.Error("syncUsecase.PushEncounter remote push failed, scheduling retry",
			zap.String(constvars.LoggingEncounterIDKey, encounterID),
			zap.Error(err),
		)
		if queueErr := uc.RetryQueue.PublishRetry(ctx, encounterID, 0); queueErr != nil {
			uc.Log.Error("syncUsecase.PushEncounter could not schedule retry",
				zap.String(constvars.LoggingEncounterIDKey, encounterID),
				zap.Error(queueErr),
			)
		}
		return false
	}

	uc.Log.Info("syncUsecase.PushEncounter succeeded",
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)
	return true
}

func (uc *SyncUsecase) buildEncounterBundle(ctx context.Context, encounterID string) (*fhir_dto.Bundle, error) {
	encounter, err := uc.ResourceRepository.FindEncounterByID(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceEncounter)
	}

	var entries []fhir_dto.Entry

	if len(encounter.Participant) > 0 {
		practitionerID := fhir_dto.StripReferencePrefix(encounter.Participant[0].Individual.Reference)
		practitioner, err := uc.ResourceRepository.FindPractitionerByID(ctx, practitionerID)
		if err != nil {
			return nil, err
		}
		if practitioner != nil {
			entry, err := bundles.NewUpsertEntry(practitioner, constvars.ResourcePractitioner, practitioner.ID)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	patientID := fhir_dto.StripReferencePrefix(encounter.Subject.Reference)
	patient, err := uc.ResourceRepository.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourcePatient)
	}
	patientEntry, err := bundles.NewUpsertEntry(patient, constvars.ResourcePatient, patient.ID)
	if err != nil {
		return nil, err
	}
	entries = append(entries, patientEntry)

	encounterEntry, err := bundles.NewUpsertEntry(encounter, constvars.ResourceEncounter, encounter.ID)
	if err != nil {
		return nil, err
	}
	entries = append(entries, encounterEntry)

	documentReferences, err := uc.ResourceRepository.ListDocumentReferencesByEncounterID(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	for i := range documentReferences {
		documentReference := &documentReferences[i]
		entry, err := bundles.NewUpsertEntry(documentReference, constvars.ResourceDocumentReference, documentReference.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		binaryEntry, ok, err := uc.resolveBinaryEntry(ctx, documentReference)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, binaryEntry)
		}
	}

	questionnaireResponses, err := uc.ResourceRepository.ListQuestionnaireResponsesByEncounterID(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	for i := range questionnaireResponses {
		entry, err := bundles.NewUpsertEntry(&questionnaireResponses[i], constvars.ResourceQuestionnaireResponse, questionnaireResponses[i].ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	provenances, err := uc.ResourceRepository.ListProvenancesByTargetID(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	for i := range provenances {
		entry, err := bundles.NewUpsertEntry(&provenances[i], constvars.ResourceProvenance, provenances[i].ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return bundles.NewTransactionBundle(entries), nil
}

// resolveBinaryEntry loads a DocumentReference's photo bytes into a Binary
// upsert entry. An unreadable attachment drops only the Binary; the
// reference itself still ships.
func (uc *SyncUsecase) resolveBinaryEntry(ctx context.Context, documentReference *fhir_dto.DocumentReference) (fhir_dto.Entry, bool, error) {
	locator := documentReference.AttachmentLocator()
	if locator == "" {
		return fhir_dto.Entry{}, false, nil
	}

	data, err := uc.AttachmentStorage.Read(ctx, locator)
	if err != nil {
		uc.Log.Warn("syncUsecase.PushEncounter skipping unreadable attachment",
			zap.String(constvars.LoggingDocumentReferenceIDKey, documentReference.ID),
			zap.String(constvars.LoggingAttachmentLocatorKey, locator),
			zap.Error(err),
		)
		return fhir_dto.Entry{}, false, nil
	}

	binary := &fhir_dto.Binary{
		ResourceType: constvars.ResourceBinary,
		ID:           filepath.Base(locator),
		ContentType:  attachmentContentType(documentReference),
		Data:         base64.StdEncoding.EncodeToString(data),
	}
	entry, err := bundles.NewUpsertEntry(binary, constvars.ResourceBinary, binary.ID)
	if err != nil {
		return fhir_dto.Entry{}, false, err
	}
	return entry, true, nil
}

func attachmentContentType(documentReference *fhir_dto.DocumentReference) string {
	if len(documentReference.Content) == 0 {
		return ""
	}
	return documentReference.Content[0].Attachment.ContentType
}

// FetchPatientHistory pulls the patient's remote record and merges it into
// the local store. Merging is upsert-only, so running it twice changes
// nothing the second time.
func (uc *SyncUsecase) FetchPatientHistory(ctx context.Context, patientID, lastUpdated string) bool {
	body, err := uc.RemoteClient.GetPatientEverything(ctx, patientID, lastUpdated)
	if err != nil {
		uc.Log.Error("syncUsecase.FetchPatientHistory remote fetch failed",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return false
	}

	bundle, err := bundles.Parse(body)
	if err != nil {
		uc.Log.Error("syncUsecase.FetchPatientHistory cannot parse remote bundle",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return false
	}
	if bundle.Type != constvars.BundleTypeSearchset && bundle.Type != constvars.BundleTypeHistory {
		uc.Log.Error("syncUsecase.FetchPatientHistory unexpected bundle type",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingResourceKindKey, bundle.Type),
		)
		return false
	}

	for _, entry := range bundle.Entry {
		if err := uc.mergeEntry(ctx, entry); err != nil {
			uc.Log.Error("syncUsecase.FetchPatientHistory cannot merge entry",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingResourceKindKey, entry.Kind()),
				zap.Error(err),
			)
			return false
		}
	}

	uc.Log.Info("syncUsecase.FetchPatientHistory succeeded",
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)
	return true
}

func (uc *SyncUsecase) mergeEntry(ctx context.Context, entry fhir_dto.Entry) error {
	switch entry.Kind() {
	case constvars.ResourceDevice:
		return mergeResource(ctx, entry, uc.ResourceRepository.UpsertDevice)
	case constvars.ResourcePractitioner:
		return mergeResource(ctx, entry, uc.ResourceRepository.UpsertPractitioner)
	case constvars.ResourcePatient:
		return mergeResource(ctx, entry, uc.ResourceRepository.UpsertPatient)
	case constvars.ResourceEncounter:
		return mergeResource(ctx, entry, uc.ResourceRepository.UpsertEncounter)
	case constvars.ResourceDocumentReference:
		return mergeResource(ctx, entry, uc.ResourceRepository.UpsertDocumentReference)
	case constvars.ResourceQuestionnaireResponse:
		return mergeResource(ctx, entry, uc.ResourceRepository.UpsertQuestionnaireResponse)
	case constvars.ResourceProvenance:
		return mergeResource(ctx, entry, uc.ResourceRepository.UpsertProvenance)
	default:
		uc.Log.Info("syncUsecase.FetchPatientHistory ignoring unknown resource kind",
			zap.String(constvars.LoggingResourceKindKey, entry.Kind()),
		)
		return nil
	}
}

func mergeResource[T any](ctx context.Context, entry fhir_dto.Entry, upsert func(context.Context, *T) error) error {
	var resource T
	if err := json.Unmarshal(entry.Resource, &resource); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return upsert(ctx, &resource)
}
