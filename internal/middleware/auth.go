package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// AuthCookieName is the cookie the signed token travels in.
const AuthCookieName = "authToken"

// TokenClaims is the payload of the auth token.
type TokenClaims struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

type emailKey struct{}

// SignJWT produces a compact HS256 JWT for the given claims.
func SignJWT(secret string, claims TokenClaims) (string, error) {
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	headerJSON, _ := json.Marshal(header)
	payloadJSON, _ := json.Marshal(claims)
	headerEnc := base64.RawURLEncoding.EncodeToString(headerJSON)
	payloadEnc := base64.RawURLEncoding.EncodeToString(payloadJSON)
	data := headerEnc + "." + payloadEnc
	sig := hmacSign(secret, data)
	return data + "." + sig, nil
}

func hmacSign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyJWT checks the signature and expiry and returns the claims.
func VerifyJWT(secret, token string) (*TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token")
	}
	expected := hmacSign(secret, parts[0]+"."+parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errors.New("invalid signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}
	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}

// AuthCookie guards protected routes. The token must arrive in the auth
// cookie, verify against secret, and its email claim must equal the email
// query parameter, so a stolen cookie cannot be replayed against another
// identity.
func AuthCookie(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			claims, err := VerifyJWT(secret, cookie.Value)
			if err != nil {
				writeMessage(w, http.StatusForbidden, "Forbidden")
				return
			}
			if r.URL.Query().Get("email") != claims.Email {
				writeMessage(w, http.StatusForbidden, "Forbidden")
				return
			}
			ctx := context.WithValue(r.Context(), emailKey{}, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the authenticated email, empty when unauthenticated.
func EmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(emailKey{}).(string); ok {
		return v
	}
	return ""
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
