package constvars

const (
	ResourcePractitioner          = "Practitioner"
	ResourcePatient               = "Patient"
	ResourceDevice                = "Device"
	ResourceEncounter             = "Encounter"
	ResourceDocumentReference     = "DocumentReference"
	ResourceQuestionnaireResponse = "QuestionnaireResponse"
	ResourceProvenance            = "Provenance"
	ResourceBinary                = "Binary"
	ResourceBundle                = "Bundle"
)

const (
	BundleTypeCollection  = "collection"
	BundleTypeTransaction = "transaction"
	BundleTypeSearchset   = "searchset"
	BundleTypeHistory     = "history"
)

const (
	FhirEncounterStatusInProgress = "in-progress"
	FhirEncounterStatusFinished   = "finished"

	FhirQuestionnaireResponseStatusCompleted = "completed"
)

// ResourceEmissionOrder is the fixed dependency order used when building
// collection and transaction bundles. A sequential importer that applies
// entries in this order never dereferences an id it has not seen yet.
// Binary entries are emitted immediately after their DocumentReference.
var ResourceEmissionOrder = []string{
	ResourceDevice,
	ResourcePractitioner,
	ResourcePatient,
	ResourceEncounter,
	ResourceDocumentReference,
	ResourceQuestionnaireResponse,
	ResourceProvenance,
}

const (
	FhirEverythingOperation  = "$everything"
	FhirLastUpdatedParameter = "_lastUpdated"
)
