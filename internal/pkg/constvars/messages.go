package constvars

const (
	LoginSuccessMessage        = "logged in successfully"
	LogoutSuccessMessage       = "logged out successfully"
	SessionActiveMessage       = "session is active"
	TokenRefreshedMessage      = "token refreshed successfully"
	ExportSuccessMessage       = "data exported successfully"
	ImportSuccessMessage       = "data imported successfully"
	EncounterPushedMessage     = "encounter pushed successfully"
	EncounterPushFailedMessage = "encounter push failed, retry scheduled"
	HistoryFetchedMessage      = "patient history fetched successfully"
	HistoryFetchFailedMessage  = "patient history fetch failed"
)
