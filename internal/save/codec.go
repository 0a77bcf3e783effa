package save

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/g1tyx/fairies-and-unicorns/internal/game"
)

// ExportVersion is stamped into export envelopes.
const ExportVersion = "v0.14"

var ErrInvalidSave = errors.New("invalid save data")

// Encode serializes a state to the on-disk document form.
func Encode(st *game.State) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}

// EncodeExport wraps a state in the export envelope and base64-encodes
// it for pasting between installs.
func EncodeExport(st *game.State, now time.Time) (string, error) {
	payload := struct {
		*game.State
		ExportVersion string    `json:"export_version"`
		ExportDate    time.Time `json:"export_date"`
	}{st, ExportVersion, now}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeImport parses pasted save data. Base64 is tried first with a
// fallback to bare JSON for old exports. The document must at least
// carry both creature pools to count as a save.
func DecodeImport(text string) (Doc, error) {
	raw := []byte(strings.TrimSpace(text))
	if decoded, err := base64.StdEncoding.DecodeString(string(raw)); err == nil {
		raw = decoded
	}
	return Decode(raw)
}

// Decode parses an on-disk document.
func Decode(raw []byte) (Doc, error) {
	var d Doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return Doc{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	if !present(d.Fairies) || !present(d.Unicorns) {
		return Doc{}, ErrInvalidSave
	}
	return d, nil
}
