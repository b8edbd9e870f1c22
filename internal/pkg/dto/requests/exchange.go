package requests

type ExportBundle struct {
	Password string `json:"password"`
}

type ImportBundle struct {
	Data     string `json:"data" validate:"required,base64"`
	Password string `json:"password"`
}
