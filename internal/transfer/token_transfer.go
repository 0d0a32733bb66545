package transfer

// OAuthTokenResponse is the common shape of an OAuth2 refresh_token grant
// response. Platforms that deviate (TikTok's client_key parameter, Reddit's
// basic-auth requirement) still answer with this envelope.
type OAuthTokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int    `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
