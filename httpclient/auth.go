package httpclient

import (
	"net/http"

	"github.com/Surya-sourav/glass/util"
)

// AuthScheme is how a vendor expects its API key to be presented.
type AuthScheme int

const (
	// AuthNone sends no credentials.
	AuthNone AuthScheme = iota
	// AuthBearer sends "Authorization: Bearer <key>" (OpenAI).
	AuthBearer
	// AuthToken sends "Authorization: Token <key>" (Deepgram).
	AuthToken
	// AuthHeader sends the bare key in a vendor header (Anthropic, Gemini).
	AuthHeader
)

// AuthConfig carries a provider API key and its scheme. An empty key sends
// nothing, which lets the vendor answer 401 for keyless calls.
type AuthConfig struct {
	Scheme AuthScheme
	Key    string
	// Header names the header for AuthHeader.
	Header string
}

// BearerAuth presents key as a bearer token.
func BearerAuth(key string) *AuthConfig {
	return &AuthConfig{Scheme: AuthBearer, Key: key}
}

// TokenAuth presents key with the "Token" authorization prefix.
func TokenAuth(key string) *AuthConfig {
	return &AuthConfig{Scheme: AuthToken, Key: key}
}

// HeaderAuth presents key in header.
func HeaderAuth(header, key string) *AuthConfig {
	return &AuthConfig{Scheme: AuthHeader, Key: key, Header: header}
}

// String describes the credential with the key masked.
func (a *AuthConfig) String() string {
	if a == nil || a.Scheme == AuthNone || a.Key == "" {
		return "none"
	}
	masked := util.MaskSecret(a.Key, 4)
	switch a.Scheme {
	case AuthBearer:
		return "Bearer " + masked
	case AuthToken:
		return "Token " + masked
	default:
		return a.Header + ": " + masked
	}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Key == "" {
		return
	}
	switch a.Scheme {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Key)
	case AuthToken:
		req.Header.Set("Authorization", "Token "+a.Key)
	case AuthHeader:
		if a.Header != "" {
			req.Header.Set(a.Header, a.Key)
		}
	}
}
