// Package metadata signs rendered reports with an integrity block and verifies them.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- REPORT_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "REPORT_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata contains the status information of a signed report.
type Metadata struct {
	GeneratedAt time.Time
	ReportID    string
	Hash        string
	Complete    bool
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_START\s*\n(.*?)\n\s*REPORT_END\s*-->`)

// Extract removes the metadata block from content and returns both the metadata and the cleaned content.
// The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	cleanContent := metadataRegex.ReplaceAllString(content, "")
	// Trim trailing newlines from cleaned content for consistent hashing
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	for line := range strings.SplitSeq(match[1], "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "COMPLETE":
			meta.Complete = strings.EqualFold(val, "TRUE")
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.GeneratedAt = t
			}
		case "HASH":
			meta.Hash = val
		case "REPORT_ID":
			meta.ReportID = val
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding metadata).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign appends a fresh metadata block to content, replacing any existing one.
// GeneratedAt defaults to now when zero.
func Sign(content string, meta Metadata) string {
	_, clean := Extract(content)

	hash := CalculateHash(clean)

	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	completeStr := "FALSE"
	if meta.Complete {
		completeStr = "TRUE"
	}

	newBlock := fmt.Sprintf("\n\n%s\nREPORT_ID: %s\nCOMPLETE: %s\nGENERATED_AT: %s\nHASH: %s\n%s\n",
		TagStart, meta.ReportID, completeStr, generated.UTC().Format(time.RFC3339), hash, TagEnd)

	return clean + newBlock
}

// Verify checks if the content matches the hash in its metadata.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
