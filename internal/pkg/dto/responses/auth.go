package responses

type Login struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type RefreshToken struct {
	AccessToken string `json:"access_token"`
}
