package bundles

import (
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Accepts every known bundle type", func(t *testing.T) {
		for _, bundleType := range []string{
			constvars.BundleTypeCollection,
			constvars.BundleTypeTransaction,
			constvars.BundleTypeSearchset,
			constvars.BundleTypeHistory,
		} {
			bundle, err := Parse([]byte(`{"resourceType":"Bundle","type":"` + bundleType + `","entry":[]}`))
			require.NoError(t, err)
			assert.Equal(t, bundleType, bundle.Type)
		}
	})

	t.Run("Rejects malformed JSON", func(t *testing.T) {
		_, err := Parse([]byte(`{"resourceType":"Bundle",`))
		assert.Error(t, err)
	})

	t.Run("Rejects a resourceType other than Bundle", func(t *testing.T) {
		_, err := Parse([]byte(`{"resourceType":"Patient","type":"collection","entry":[]}`))
		assert.Error(t, err)
	})

	t.Run("Rejects an unknown bundle type", func(t *testing.T) {
		_, err := Parse([]byte(`{"resourceType":"Bundle","type":"batch","entry":[]}`))
		assert.Error(t, err)
	})

	t.Run("Keeps entry request directives", func(t *testing.T) {
		bundle, err := Parse([]byte(`{
			"resourceType": "Bundle",
			"type": "transaction",
			"entry": [
				{
					"resource": {"resourceType": "Patient", "id": "p1"},
					"request": {"method": "PUT", "url": "Patient/p1"}
				}
			]
		}`))
		require.NoError(t, err)
		require.Len(t, bundle.Entry, 1)
		require.NotNil(t, bundle.Entry[0].Request)
		assert.Equal(t, "PUT", bundle.Entry[0].Request.Method)
		assert.Equal(t, "Patient/p1", bundle.Entry[0].Request.URL)
		assert.Equal(t, constvars.ResourcePatient, bundle.Entry[0].Kind())
	})
}

func TestSerializeRoundTrip(t *testing.T) {
	entry, err := NewEntry(&fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "p1"})
	require.NoError(t, err)

	original := NewCollectionBundle([]fhir_dto.Entry{entry})
	data, err := Serialize(original)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, constvars.BundleTypeCollection, parsed.Type)
	assert.Equal(t, 1, parsed.Total)
	require.Len(t, parsed.Entry, 1)
	assert.Equal(t, constvars.ResourcePatient, parsed.Entry[0].Kind())
}

func TestNewUpsertEntry(t *testing.T) {
	entry, err := NewUpsertEntry(&fhir_dto.Encounter{ResourceType: constvars.ResourceEncounter, ID: "e1"}, constvars.ResourceEncounter, "e1")
	require.NoError(t, err)
	require.NotNil(t, entry.Request)
	assert.Equal(t, "PUT", entry.Request.Method)
	assert.Equal(t, "Encounter/e1", entry.Request.URL)
}
