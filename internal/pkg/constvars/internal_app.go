package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_SESSION_KEY    ContextKey = "session"
)

const (
	MongoCollectionUsers = "users"

	MongoCollectionPractitioners          = "practitioners"
	MongoCollectionPatients               = "patients"
	MongoCollectionDevices                = "devices"
	MongoCollectionEncounters             = "encounters"
	MongoCollectionDocumentReferences     = "document_references"
	MongoCollectionQuestionnaireResponses = "questionnaire_responses"
	MongoCollectionProvenances            = "provenances"
)

const (
	// AuthSentinelPassword deterministically fails login. It exists for
	// fault-injection in clients and tests; it is never a valid credential.
	AuthSentinelPassword = "this-is-an-invalid-password"

	AuthDefaultDisplayName = "Clinician"

	SessionKeyFormat      = "session:%s"
	RefreshTokenKeyFormat = "refresh:%s"

	// RefreshTokenLifetimeHours outlives the access token so a client can
	// always mint a fresh one without re-entering credentials.
	RefreshTokenLifetimeHours = 168
)

const (
	SyncRetryQueueName      = "encounter_sync_retry_queue"
	SyncRetryDeadLetterName = "encounter_sync_retry_dlq"
	SyncRetryMaxAttempts    = 5
)
