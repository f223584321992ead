package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
)

// Ошибки кодека токенов скачивания. Наружу (в HTTP-ответ) уходит только
// ErrTokenDenied, конкретная причина остаётся в логах
var (
	ErrMissingSecret    = errors.New("[security] секрет подписи DOWNLOAD_SECRET не задан")
	ErrMalformedToken   = errors.New("[security] токен имеет неверный формат")
	ErrInvalidSignature = errors.New("[security] подпись токена не совпадает")
	ErrTokenExpired     = errors.New("[security] срок действия токена истёк")
	ErrTokenDenied      = errors.New("[security] токен недействителен или просрочен")
)

// DownloadTokenPayload : самодостаточная capability на скачивание одного
// объекта. Времена — epoch в миллисекундах, как в формате токена
type DownloadTokenPayload struct {
	FileKey   string `json:"fileKey"`
	ExpiresAt int64  `json:"expiresAt"`
	Timestamp int64  `json:"timestamp"`
	Nonce     string `json:"nonce"`
}

// EncodeDownloadToken : выпускает подписанный токен вида
// base64(JSON(payload)) + "." + hex(HMAC-SHA256(payload, secret)).
// Nonce из 16 случайных байт гарантирует, что два токена на один и тот же
// ключ и срок действия никогда не совпадут побайтово
func EncodeDownloadToken(fileKey string, expiresAt time.Time, secret string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	payload := DownloadTokenPayload{
		FileKey:   fileKey,
		ExpiresAt: expiresAt.UnixMilli(),
		Timestamp: time.Now().UnixMilli(),
		Nonce:     hex.EncodeToString(nonce),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(payloadJSON) + "." + signPayload(payloadJSON, secret), nil
}

// DecodeDownloadToken : проверяет подпись и срок действия, возвращает
// доверенный payload
func DecodeDownloadToken(token string, secret string) (*DownloadTokenPayload, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	encodedPayload, signature, found := strings.Cut(token, ".")
	if !found || encodedPayload == "" || signature == "" {
		return nil, ErrMalformedToken
	}

	payloadJSON, err := base64.StdEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, ErrMalformedToken
	}

	var payload DownloadTokenPayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, ErrMalformedToken
	}

	// hmac.Equal — сравнение за константное время
	if !hmac.Equal([]byte(signature), []byte(signPayload(payloadJSON, secret))) {
		return nil, ErrInvalidSignature
	}

	if time.Now().UnixMilli() > payload.ExpiresAt {
		return nil, ErrTokenExpired
	}

	return &payload, nil
}

// VerifyDownloadToken : обёртка для пути скачивания. Любая ошибка кодека
// схлопывается в единый отказ, чтобы клиент не мог различить неверную
// подпись и истёкший срок. Токен — bearer capability без привязки к
// пользователю и без revocation: до истечения срока им можно
// воспользоваться сколько угодно раз
func VerifyDownloadToken(token string, secret string) (string, error) {
	payload, err := DecodeDownloadToken(token, secret)
	if err != nil {
		log.Printf("[security] отказ в скачивании: %v", err)
		return "", ErrTokenDenied
	}

	return payload.FileKey, nil
}

func signPayload(payloadJSON []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payloadJSON)
	return hex.EncodeToString(mac.Sum(nil))
}
