package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingMethodKey      = "method"
	LoggingEndpointKey    = "endpoint"
	LoggingStatusCodeKey  = "status_code"
	LoggingRemoteAddrKey  = "remote_addr"
	LoggingUserAgentKey   = "user_agent"
	LoggingDurationKey    = "duration"
	LoggingUsernameKey    = "username"
	LoggingPatientIDKey   = "patient_id"
	LoggingEncounterIDKey = "encounter_id"
	LoggingResourceKey            = "resource"
	LoggingResourceKindKey        = "resource_kind"
	LoggingDocumentReferenceIDKey = "document_reference_id"
	LoggingAttachmentLocatorKey   = "attachment_locator"
	LoggingEntryCountKey  = "entry_count"
	LoggingAttachmentKey  = "attachment"
	LoggingQueueKey       = "queue"
	LoggingMessageIDKey   = "message_id"
)
