package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one extracted document
type Metadata struct {
	FileName  string `json:"file_name,omitempty"`
	FileType  string `json:"file_type"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
	Words     int    `json:"words"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, fileName string) *Metadata {
	return &Metadata{
		FileName:  fileName,
		FileType:  FileType(fileName),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      Hash(content),
		Chars:     len([]rune(content)),
		Words:     WordCount(content),
	}
}

// Hash returns the SHA256 hex digest of content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
