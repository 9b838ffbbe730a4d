// Package middleware содержит HTTP middleware заглушки сервера магазина.
package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// tokenFormField — имя поля формы с токеном защиты от подделки запросов.
const tokenFormField = "csrfmiddlewaretoken"

// CSRFMiddleware выпускает и проверяет подписанные токены защиты от
// подделки запросов для POST-форм.
type CSRFMiddleware struct {
	secretKey []byte
}

// NewCSRFMiddleware создаёт новый экземпляр CSRFMiddleware с указанным
// секретным ключом. Пустой ключ заменяется случайным.
func NewCSRFMiddleware(secret string) *CSRFMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &CSRFMiddleware{
		secretKey: key,
	}
}

// Issue выпускает новый подписанный токен.
func (m *CSRFMiddleware) Issue() string {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		nonce = []byte("fallback-nonce--")
	}

	value := hex.EncodeToString(nonce)
	return value + "." + m.sign(value)
}

// Verify проверяет подпись токена.
func (m *CSRFMiddleware) Verify(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return false
	}

	expected := m.sign(parts[0])
	return hmac.Equal([]byte(parts[1]), []byte(expected))
}

// Middleware отклоняет POST-запросы без действительного токена в форме.
func (m *CSRFMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			if !m.Verify(r.PostFormValue(tokenFormField)) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (m *CSRFMiddleware) sign(value string) string {
	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
