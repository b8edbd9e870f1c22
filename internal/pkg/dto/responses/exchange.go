package responses

type ExportBundle struct {
	Data string `json:"data"`
}

type SyncOutcome struct {
	Synced bool `json:"synced"`
}
