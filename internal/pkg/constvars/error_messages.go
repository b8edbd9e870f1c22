package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientIncorrectPassword             = "incorrect password"
	ErrClientInvalidCredentials            = "Invalid Credentials"
	ErrClientWrongPasswordOrCorruptData    = "wrong password or bad data"
	ErrClientResourceNotFound              = "the requested record was not found"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevValidationFailed         = "validation failed"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevDecodeResponse           = "failed to decode response body"
	ErrDevBundleMalformed          = "bundle text is malformed or has an unknown type"
	ErrDevImportDecodeFailed       = "decrypted payload did not parse as a bundle"
	ErrDevAttachmentRead           = "failed to read attachment bytes"
	ErrDevAttachmentWrite          = "failed to write attachment bytes"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevIncorrectPassword        = "password hash mismatch"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevAuthSigningMethod        = "unexpected signing method"
	ErrDevAuthTokenInvalid         = "invalid token"
	ErrDevAuthTokenMissing         = "token missing"
	ErrDevAuthInvalidSession       = "invalid session"
	ErrDevAuthGenerateToken        = "failed to generate token"
	ErrDevRedisStoreSession        = "failed to store session data into redis"
	ErrDevRedisGet                 = "failed to get data from redis"
	ErrDevRedisSet                 = "failed to set data into redis"
	ErrDevRedisDelete              = "failed to delete data from redis"
	ErrDevDBFailedToUpsertDocument = "failed to upsert document into database"
	ErrDevDBFailedToFindDocument   = "failed when do find document on database"
	ErrDevMinioCreateObject        = "failed to put object into bucket %s"
	ErrDevMinioGetObject           = "failed to get object from bucket %s"
	ErrDevQueuePublish             = "failed to publish message to queue"
	ErrDevServerDeadlineExceeded   = "deadline exceeded"
)
