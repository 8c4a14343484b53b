package services

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encryptPayload(t *testing.T, preSharedKey string, plaintext []byte) spreadsheetPayload {
	t.Helper()

	key := sha256.Sum256([]byte(preSharedKey))
	block, err := aes.NewCipher(key[:])
	require.NoError(t, err)

	iv := make([]byte, aes.BlockSize)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append(append([]byte{}, plaintext...), bytes.Repeat([]byte{byte(padLen)}, padLen)...)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return spreadsheetPayload{
		IV:         hex.EncodeToString(iv),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}
}

func payloadServer(t *testing.T, payload spreadsheetPayload) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchCsv_RoundTrip(t *testing.T) {
	csvBytes := []byte("成立日,売買,取引数量（枚）,確定損益\n2025/1/6,買,2,\"15,924円\"\n")
	server := payloadServer(t, encryptPayload(t, "secret-key", csvBytes))

	svc := NewSpreadsheetService(server.URL, "secret-key", 5*time.Second)
	got, err := svc.FetchCsv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csvBytes, got)
}

func TestFetchCsv_NotConfigured(t *testing.T) {
	svc := NewSpreadsheetService("", "", time.Second)
	_, err := svc.FetchCsv(context.Background())
	assert.ErrorIs(t, err, ErrSpreadsheetNotConfigured)

	svc = NewSpreadsheetService("http://example.invalid", "", time.Second)
	_, err = svc.FetchCsv(context.Background())
	assert.ErrorIs(t, err, ErrSpreadsheetNotConfigured)
}

func TestFetchCsv_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	svc := NewSpreadsheetService(server.URL, "secret-key", 5*time.Second)
	_, err := svc.FetchCsv(context.Background())
	assert.ErrorIs(t, err, ErrSpreadsheetFetchFailed)
}

func TestFetchCsv_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	svc := NewSpreadsheetService(server.URL, "secret-key", 5*time.Second)
	_, err := svc.FetchCsv(context.Background())
	assert.ErrorIs(t, err, ErrSpreadsheetFetchFailed)
}

func TestFetchCsv_BadIv(t *testing.T) {
	payload := encryptPayload(t, "secret-key", []byte("a,b\n1,2\n"))
	payload.IV = "zz-not-hex"
	server := payloadServer(t, payload)

	svc := NewSpreadsheetService(server.URL, "secret-key", 5*time.Second)
	_, err := svc.FetchCsv(context.Background())
	assert.ErrorIs(t, err, ErrSpreadsheetFetchFailed)
}

func TestDecryptSpreadsheetPayload_TruncatedCiphertext(t *testing.T) {
	payload := encryptPayload(t, "secret-key", []byte("a,b\n1,2\n"))
	raw, err := base64.StdEncoding.DecodeString(payload.Ciphertext)
	require.NoError(t, err)
	payload.Ciphertext = base64.StdEncoding.EncodeToString(raw[:len(raw)-1])

	_, err = decryptSpreadsheetPayload(payload, "secret-key")
	assert.Error(t, err)
}

func TestStripPKCS7Padding(t *testing.T) {
	got, err := stripPKCS7Padding(append([]byte("abcd"), bytes.Repeat([]byte{12}, 12)...))
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), got)

	_, err = stripPKCS7Padding([]byte{1, 2, 3, 0})
	assert.Error(t, err)

	_, err = stripPKCS7Padding([]byte{5, 5, 5})
	assert.Error(t, err)
}
