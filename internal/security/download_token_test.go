package security_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-web-server/internal/security"
)

const testSecret = "test-download-secret"

func TestEncodeDecode_RoundTrip(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	token, err := security.EncodeDownloadToken("audio/42_1.mp3", expiresAt, testSecret)
	require.NoError(t, err)

	payload, err := security.DecodeDownloadToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "audio/42_1.mp3", payload.FileKey)
	assert.Equal(t, expiresAt.UnixMilli(), payload.ExpiresAt)
}

func TestEncode_WireFormat(t *testing.T) {
	token, err := security.EncodeDownloadToken("word/1_a.docx", time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 2)

	// подпись — hex от SHA-256, 64 символа
	assert.Len(t, parts[1], 64)

	payloadJSON, err := base64.StdEncoding.DecodeString(parts[0])
	require.NoError(t, err)

	var payload security.DownloadTokenPayload
	require.NoError(t, json.Unmarshal(payloadJSON, &payload))

	assert.Equal(t, "word/1_a.docx", payload.FileKey)
	assert.Len(t, payload.Nonce, 32)
	assert.Greater(t, payload.Timestamp, int64(0))
	assert.Greater(t, payload.ExpiresAt, payload.Timestamp)
}

func TestEncode_MissingSecret(t *testing.T) {
	_, err := security.EncodeDownloadToken("audio/1.mp3", time.Now().Add(time.Hour), "")
	assert.ErrorIs(t, err, security.ErrMissingSecret)
}

func TestEncode_NonceUniqueness(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Millisecond)

	first, err := security.EncodeDownloadToken("audio/42_1.mp3", expiresAt, testSecret)
	require.NoError(t, err)
	second, err := security.EncodeDownloadToken("audio/42_1.mp3", expiresAt, testSecret)
	require.NoError(t, err)

	// одинаковый ключ и срок действия, но токены не совпадают побайтово
	assert.NotEqual(t, first, second)
}

func TestDecode_SignatureFlip(t *testing.T) {
	token, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	dot := strings.Index(token, ".")
	require.Greater(t, dot, 0)

	// порча любого символа подписи ломает проверку
	for i := dot + 1; i < len(token); i++ {
		flipped := []byte(token)
		if flipped[i] == 'a' {
			flipped[i] = 'b'
		} else {
			flipped[i] = 'a'
		}

		_, err := security.DecodeDownloadToken(string(flipped), testSecret)
		assert.ErrorIs(t, err, security.ErrInvalidSignature, "позиция %d", i)
	}
}

func TestDecode_Expired(t *testing.T) {
	// подпись валидна, но срок уже истёк
	token, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(-time.Millisecond), testSecret)
	require.NoError(t, err)

	_, err = security.DecodeDownloadToken(token, testSecret)
	assert.ErrorIs(t, err, security.ErrTokenExpired)
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"без разделителя", "justonepart"},
		{"пустой payload", ".abcdef"},
		{"пустая подпись", "YWJj."},
		{"не base64", "%%%.abcdef"},
		{"не JSON внутри", base64.StdEncoding.EncodeToString([]byte("not json")) + ".abcdef"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := security.DecodeDownloadToken(tc.token, testSecret)
			assert.ErrorIs(t, err, security.ErrMalformedToken)
		})
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	token, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	_, err = security.DecodeDownloadToken(token, "другой-секрет")
	assert.ErrorIs(t, err, security.ErrInvalidSignature)
}

func TestVerify_UniformDenial(t *testing.T) {
	expired, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(-time.Hour), testSecret)
	require.NoError(t, err)

	// клиент не должен различать причины отказа
	for _, token := range []string{"garbage", expired, ""} {
		_, err := security.VerifyDownloadToken(token, testSecret)
		assert.ErrorIs(t, err, security.ErrTokenDenied)
	}
}

func TestVerify_Valid(t *testing.T) {
	token, err := security.EncodeDownloadToken("word/7_b.docx", time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	fileKey, err := security.VerifyDownloadToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "word/7_b.docx", fileKey)
}
