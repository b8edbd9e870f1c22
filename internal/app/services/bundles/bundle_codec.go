package bundles

import (
	"fmt"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
)

var knownBundleTypes = map[string]struct{}{
	constvars.BundleTypeCollection:  {},
	constvars.BundleTypeTransaction: {},
	constvars.BundleTypeSearchset:   {},
	constvars.BundleTypeHistory:     {},
}

// Serialize renders a bundle to its canonical JSON form.
func Serialize(bundle *fhir_dto.Bundle) ([]byte, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return data, nil
}

// Parse decodes and validates bundle JSON. Malformed JSON, a resourceType
// other than Bundle and an unknown bundle type all fail the same way, so
// callers only ever handle one parse error.
func Parse(data []byte) (*fhir_dto.Bundle, error) {
	var bundle fhir_dto.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, exceptions.ErrBundleParse(err)
	}
	if bundle.ResourceType != constvars.ResourceBundle {
		return nil, exceptions.ErrBundleParse(fmt.Errorf("unexpected resourceType %q", bundle.ResourceType))
	}
	if _, ok := knownBundleTypes[bundle.Type]; !ok {
		return nil, exceptions.ErrBundleParse(fmt.Errorf("unknown bundle type %q", bundle.Type))
	}
	return &bundle, nil
}

// NewEntry wraps a resource as a plain bundle entry.
func NewEntry(resource interface{}) (fhir_dto.Entry, error) {
	raw, err := json.Marshal(resource)
	if err != nil {
		return fhir_dto.Entry{}, exceptions.ErrCannotMarshalJSON(err)
	}
	return fhir_dto.Entry{Resource: raw}, nil
}

// NewUpsertEntry wraps a resource as a transaction entry with a PUT
// directive addressing "<kind>/<id>".
func NewUpsertEntry(resource interface{}, kind, id string) (fhir_dto.Entry, error) {
	entry, err := NewEntry(resource)
	if err != nil {
		return fhir_dto.Entry{}, err
	}
	entry.Request = &fhir_dto.EntryRequest{
		Method: "PUT",
		URL:    fhir_dto.BuildReference(kind, id),
	}
	return entry, nil
}

// NewCollectionBundle assembles a collection bundle around pre-built
// entries, stamping Total with the entry count.
func NewCollectionBundle(entries []fhir_dto.Entry) *fhir_dto.Bundle {
	return &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.BundleTypeCollection,
		Total:        len(entries),
		Entry:        entries,
	}
}

// NewTransactionBundle assembles a transaction bundle around pre-built
// entries.
func NewTransactionBundle(entries []fhir_dto.Entry) *fhir_dto.Bundle {
	return &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.BundleTypeTransaction,
		Entry:        entries,
	}
}
