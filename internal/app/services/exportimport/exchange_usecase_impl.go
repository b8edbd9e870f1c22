package exportimport

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/services/bundles"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/fhir_dto"
	"photodoc-service/internal/pkg/streamcipher"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ExchangeUsecase turns the whole local resource graph into a single
// encrypted, base64-wrapped collection bundle and back. Export emits
// resources in dependency order so a sequential importer never sees a
// dangling reference; import applies binaries first so document locators
// can be rewritten to their new storage paths.
type ExchangeUsecase struct {
	ResourceRepository contracts.ResourceRepository
	AttachmentStorage  contracts.AttachmentStorage
	Log                *zap.Logger
}

func NewExchangeUsecase(
	resourceRepository contracts.ResourceRepository,
	attachmentStorage contracts.AttachmentStorage,
	log *zap.Logger,
) contracts.ExchangeUsecase {
	return &ExchangeUsecase{
		ResourceRepository: resourceRepository,
		AttachmentStorage:  attachmentStorage,
		Log:                log,
	}
}

func (uc *ExchangeUsecase) Export(ctx context.Context, password string) (string, error) {
	var entries []fhir_dto.Entry
	for _, kind := range constvars.ResourceEmissionOrder {
		kindEntries, err := uc.collectKind(ctx, kind)
		if err != nil {
			return "", err
		}
		entries = append(entries, kindEntries...)
	}

	bundle := bundles.NewCollectionBundle(entries)
	plaintext, err := bundles.Serialize(bundle)
	if err != nil {
		return "", err
	}

	ciphertext := streamcipher.Encrypt(plaintext, password)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (uc *ExchangeUsecase) collectKind(ctx context.Context, kind string) ([]fhir_dto.Entry, error) {
	switch kind {
	case constvars.ResourceDevice:
		devices, err := uc.ResourceRepository.ListDevices(ctx)
		if err != nil {
			return nil, err
		}
		return buildEntries(devices)
	case constvars.ResourcePractitioner:
		practitioners, err := uc.ResourceRepository.ListPractitioners(ctx)
		if err != nil {
			return nil, err
		}
		return buildEntries(practitioners)
	case constvars.ResourcePatient:
		patients, err := uc.ResourceRepository.ListPatients(ctx)
		if err != nil {
			return nil, err
		}
		return buildEntries(patients)
	case constvars.ResourceEncounter:
		encounters, err := uc.ResourceRepository.ListEncounters(ctx)
		if err != nil {
			return nil, err
		}
		return buildEntries(encounters)
	case constvars.ResourceDocumentReference:
		return uc.collectDocumentReferences(ctx)
	case constvars.ResourceQuestionnaireResponse:
		questionnaireResponses, err := uc.ResourceRepository.ListQuestionnaireResponses(ctx)
		if err != nil {
			return nil, err
		}
		return buildEntries(questionnaireResponses)
	case constvars.ResourceProvenance:
		provenances, err := uc.ResourceRepository.ListProvenances(ctx)
		if err != nil {
			return nil, err
		}
		return buildEntries(provenances)
	}
	return nil, nil
}

// collectDocumentReferences emits each DocumentReference immediately
// followed by a Binary holding its photo bytes. An unreadable attachment
// drops only the Binary; the reference itself always ships.
func (uc *ExchangeUsecase) collectDocumentReferences(ctx context.Context) ([]fhir_dto.Entry, error) {
	documentReferences, err := uc.ResourceRepository.ListDocumentReferences(ctx)
	if err != nil {
		return nil, err
	}

	var entries []fhir_dto.Entry
	for i := range documentReferences {
		documentReference := &documentReferences[i]
		entry, err := bundles.NewEntry(documentReference)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		locator := documentReference.AttachmentLocator()
		if locator == "" {
			continue
		}
		data, err := uc.AttachmentStorage.Read(ctx, locator)
		if err != nil {
			uc.Log.Warn("exchange.Export skipping unreadable attachment",
				zap.String(constvars.LoggingDocumentReferenceIDKey, documentReference.ID),
				zap.String(constvars.LoggingAttachmentLocatorKey, locator),
				zap.Error(err),
			)
			continue
		}

		binary := &fhir_dto.Binary{
			ResourceType: constvars.ResourceBinary,
			ID:           filepath.Base(locator),
			ContentType:  attachmentContentType(documentReference),
			Data:         base64.StdEncoding.EncodeToString(data),
		}
		binaryEntry, err := bundles.NewEntry(binary)
		if err != nil {
			return nil, err
		}
		entries = append(entries, binaryEntry)
	}
	return entries, nil
}

func attachmentContentType(documentReference *fhir_dto.DocumentReference) string {
	if len(documentReference.Content) == 0 {
		return ""
	}
	return documentReference.Content[0].Attachment.ContentType
}

func buildEntries[T any](resources []T) ([]fhir_dto.Entry, error) {
	entries := make([]fhir_dto.Entry, 0, len(resources))
	for i := range resources {
		entry, err := bundles.NewEntry(&resources[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Import fails closed: a wrong password garbles the ciphertext, the garble
// fails bundle parsing and nothing is written. Binaries are applied in a
// first pass so the second pass can rewrite document locators to their new
// storage paths before any resource lands in the store.
func (uc *ExchangeUsecase) Import(ctx context.Context, encodedData, password string) error {
	ciphertext, err := base64.StdEncoding.DecodeString(encodedData)
	if err != nil {
		return exceptions.ErrImportDecode(err)
	}

	plaintext := streamcipher.Decrypt(ciphertext, password)
	bundle, err := bundles.Parse(plaintext)
	if err != nil {
		return exceptions.ErrImportDecode(err)
	}

	binaryLocators, err := uc.applyBinaries(ctx, bundle)
	if err != nil {
		return err
	}
	return uc.applyResources(ctx, bundle, binaryLocators)
}

// applyBinaries writes every Binary back into attachment storage and
// returns a map from original file name to new locator.
func (uc *ExchangeUsecase) applyBinaries(ctx context.Context, bundle *fhir_dto.Bundle) (map[string]string, error) {
	binaryLocators := make(map[string]string)
	for _, entry := range bundle.Entry {
		if entry.Kind() != constvars.ResourceBinary {
			continue
		}
		var binary fhir_dto.Binary
		if err := json.Unmarshal(entry.Resource, &binary); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		data, err := base64.StdEncoding.DecodeString(binary.Data)
		if err != nil {
			return nil, exceptions.ErrImportDecode(err)
		}
		locator, err := uc.AttachmentStorage.Write(ctx, binary.ID, binary.ContentType, data)
		if err != nil {
			return nil, err
		}
		binaryLocators[binary.ID] = locator
	}
	return binaryLocators, nil
}

func (uc *ExchangeUsecase) applyResources(ctx context.Context, bundle *fhir_dto.Bundle, binaryLocators map[string]string) error {
	for _, entry := range bundle.Entry {
		kind := entry.Kind()
		var err error
		switch kind {
		case constvars.ResourceDevice:
			err = upsertFromEntry(ctx, entry, uc.ResourceRepository.UpsertDevice)
		case constvars.ResourcePractitioner:
			err = upsertFromEntry(ctx, entry, uc.ResourceRepository.UpsertPractitioner)
		case constvars.ResourcePatient:
			err = upsertFromEntry(ctx, entry, uc.ResourceRepository.UpsertPatient)
		case constvars.ResourceEncounter:
			err = upsertFromEntry(ctx, entry, uc.ResourceRepository.UpsertEncounter)
		case constvars.ResourceDocumentReference:
			err = uc.applyDocumentReference(ctx, entry, binaryLocators)
		case constvars.ResourceQuestionnaireResponse:
			err = upsertFromEntry(ctx, entry, uc.ResourceRepository.UpsertQuestionnaireResponse)
		case constvars.ResourceProvenance:
			err = upsertFromEntry(ctx, entry, uc.ResourceRepository.UpsertProvenance)
		case constvars.ResourceBinary:
			// already applied in the first pass
		default:
			uc.Log.Info("exchange.Import ignoring unknown resource kind",
				zap.String(constvars.LoggingResourceKindKey, kind),
			)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (uc *ExchangeUsecase) applyDocumentReference(ctx context.Context, entry fhir_dto.Entry, binaryLocators map[string]string) error {
	var documentReference fhir_dto.DocumentReference
	if err := json.Unmarshal(entry.Resource, &documentReference); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if locator := documentReference.AttachmentLocator(); locator != "" {
		if rewritten, ok := binaryLocators[filepath.Base(locator)]; ok {
			documentReference.Content[0].Attachment.Url = rewritten
		}
	}
	return uc.ResourceRepository.UpsertDocumentReference(ctx, &documentReference)
}

func upsertFromEntry[T any](ctx context.Context, entry fhir_dto.Entry, upsert func(context.Context, *T) error) error {
	var resource T
	if err := json.Unmarshal(entry.Resource, &resource); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return upsert(ctx, &resource)
}
