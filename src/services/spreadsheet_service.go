// src/services/spreadsheet_service.go
package services

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
)

const maxSpreadsheetBodyBytes = 32 * 1024 * 1024

// spreadsheetPayload is the JSON shape the spreadsheet endpoint serves: an
// AES-256-CBC ciphertext with its IV. The key is derived as SHA-256 of a
// pre-shared key, matching the exporting script on the spreadsheet side.
type spreadsheetPayload struct {
	IV         string `json:"iv"`         // hex
	Ciphertext string `json:"ciphertext"` // base64
}

type spreadsheetServiceImpl struct {
	endpoint     string
	preSharedKey string
	httpClient   *http.Client
}

func NewSpreadsheetService(endpoint, preSharedKey string, timeout time.Duration) SpreadsheetService {
	return &spreadsheetServiceImpl{
		endpoint:     endpoint,
		preSharedKey: preSharedKey,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (s *spreadsheetServiceImpl) FetchCsv(ctx context.Context) ([]byte, error) {
	if s.endpoint == "" || s.preSharedKey == "" {
		return nil, ErrSpreadsheetNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrSpreadsheetFetchFailed, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpreadsheetFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.L.Warn("Spreadsheet endpoint returned non-OK status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSpreadsheetFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSpreadsheetBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrSpreadsheetFetchFailed, err)
	}

	var payload spreadsheetPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", ErrSpreadsheetFetchFailed, err)
	}

	plaintext, err := decryptSpreadsheetPayload(payload, s.preSharedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpreadsheetFetchFailed, err)
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet returned no data", ErrSpreadsheetFetchFailed)
	}
	return plaintext, nil
}

func decryptSpreadsheetPayload(payload spreadsheetPayload, preSharedKey string) ([]byte, error) {
	iv, err := hex.DecodeString(payload.IV)
	if err != nil {
		return nil, fmt.Errorf("invalid iv: %v", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("invalid iv length %d", len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(payload.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("invalid ciphertext: %v", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("invalid ciphertext length %d", len(ciphertext))
	}

	key := sha256.Sum256([]byte(preSharedKey))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %v", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return stripPKCS7Padding(plaintext)
}

func stripPKCS7Padding(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty plaintext")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}
