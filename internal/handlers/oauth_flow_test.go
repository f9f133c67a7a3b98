package handlers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"metaclassroom/internal/config"
	"metaclassroom/internal/security"
)

func newOAuthRouter(h *AuthHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/auth/providers", h.Providers)
	r.Get("/api/auth/{provider}/start", h.StartOAuth)
	r.Get("/api/auth/{provider}/callback", h.OAuthCallback)
	return r
}

func TestOAuthProvidersFromConfig(t *testing.T) {
	providers := OAuthProvidersFromConfig(&config.Config{GoogleClientID: "gid", GoogleClientSecret: "gsecret"})
	require.Len(t, providers, 3)
	assert.True(t, providers["google"].configured())
	assert.False(t, providers["facebook"].configured())
	assert.Equal(t, "query", providers["apple"].AuthParams["response_mode"])

	h := NewAuthHandler(nil, security.NewSigner("s"), providers, "https://class.example.com", "https://class.example.com")
	rec := httptest.NewRecorder()
	newOAuthRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/providers", nil))

	var got ProvidersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, []OAuthProviderView{{Name: "google", Label: "Google", URL: "/api/auth/google/start"}}, got.Providers)
}

func TestStartOAuthRedirects(t *testing.T) {
	signer := security.NewSigner("state-secret")
	providers := map[string]OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     "client",
				ClientSecret: "secret",
				Endpoint:     oauth2.Endpoint{AuthURL: "https://accounts.example.com/auth", TokenURL: "https://accounts.example.com/token"},
				Scopes:       []string{"openid", "email"},
			},
		},
		"facebook": {Name: "facebook", Label: "Facebook", Config: &oauth2.Config{}},
	}
	h := NewAuthHandler(nil, signer, providers, "https://class.example.com/", "https://class.example.com")
	router := newOAuthRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/start", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.example.com", loc.Host)
	assert.Equal(t, "https://class.example.com/api/auth/google/callback", loc.Query().Get("redirect_uri"))

	state := loc.Query().Get("state")
	assert.NoError(t, signer.VerifyState(state))

	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookie {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.Equal(t, state, stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/facebook/start", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOAuthCallbackRejectsBadState(t *testing.T) {
	signer := security.NewSigner("state-secret")
	providers := map[string]OAuthProvider{
		"google": {Name: "google", Label: "Google", Config: &oauth2.Config{ClientID: "c", ClientSecret: "s"}},
	}
	router := newOAuthRouter(NewAuthHandler(nil, signer, providers, "", ""))

	state, err := signer.NewState()
	require.NoError(t, err)

	tests := []struct {
		name   string
		query  string
		cookie string
		want   string
	}{
		{"missing code", "state=" + state, state, "Missing authorization code"},
		{"no cookie", "code=abc&state=" + state, "", "Invalid OAuth state"},
		{"cookie mismatch", "code=abc&state=" + state, "other", "Invalid OAuth state"},
		{"forged state", "code=abc&state=nonce.sig", "nonce.sig", "Invalid OAuth state"},
		{"provider error", "error=access_denied", "", "Sign-in was cancelled: access_denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func appleKeyServer(t *testing.T, key *rsa.PrivateKey, kid string) *httptest.Server {
	t.Helper()
	e := big.NewInt(int64(key.PublicKey.E)).Bytes()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(appleJWK{Keys: []appleJWKKey{{
			Kid: kid,
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(e),
		}}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signAppleToken(t *testing.T, key *rsa.PrivateKey, kid string, claims appleTokenClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestParseAppleIDToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := appleKeyServer(t, key, "k1")

	valid := func() appleTokenClaims {
		return appleTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    appleIssuer,
				Subject:   "apple-sub",
				Audience:  jwt.ClaimStrings{"com.example.classroom"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
			Email: "student@privaterelay.appleid.com",
			Nonce: "n-1",
		}
	}

	info, err := parseAppleIDToken(context.Background(), srv.URL, signAppleToken(t, key, "k1", valid()), "com.example.classroom", "n-1")
	require.NoError(t, err)
	assert.Equal(t, "apple-sub", info.Subject)
	assert.Equal(t, "student@privaterelay.appleid.com", info.Email)

	tests := []struct {
		name   string
		mutate func(c *appleTokenClaims)
		kid    string
		nonce  string
		want   string
	}{
		{"wrong audience", func(c *appleTokenClaims) { c.Audience = jwt.ClaimStrings{"other"} }, "k1", "", "invalid Apple token"},
		{"wrong issuer", func(c *appleTokenClaims) { c.Issuer = "https://evil.example.com" }, "k1", "", "invalid Apple token"},
		{"expired", func(c *appleTokenClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour)) }, "k1", "", "invalid Apple token"},
		{"unknown key", func(c *appleTokenClaims) {}, "k2", "", "invalid Apple token"},
		{"nonce mismatch", func(c *appleTokenClaims) {}, "k1", "n-2", "invalid Apple nonce"},
		{"no email", func(c *appleTokenClaims) { c.Email = "" }, "k1", "", "Apple email not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := valid()
			tt.mutate(&claims)
			_, err := parseAppleIDToken(context.Background(), srv.URL, signAppleToken(t, key, tt.kid, claims), "com.example.classroom", tt.nonce)
			assert.EqualError(t, err, tt.want)
		})
	}
}
