package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// Boards lists the company boards queried per ATS vendor.
type Boards struct {
	Greenhouse      []string `json:"greenhouse,omitempty"`
	Lever           []string `json:"lever,omitempty"`
	SmartRecruiters []string `json:"smartrecruiters,omitempty"`
	Ashby           []string `json:"ashby,omitempty"`
}

// boardsSchema validates the board list shape before it reaches the
// adapters; a typoed vendor key or a non-string slug fails loudly at startup
// instead of silently fetching nothing.
const boardsSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"greenhouse":      {"type": "array", "items": {"type": "string", "minLength": 1}},
		"lever":           {"type": "array", "items": {"type": "string", "minLength": 1}},
		"smartrecruiters": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"ashby":           {"type": "array", "items": {"type": "string", "minLength": 1}}
	}
}`

// LoadBoards reads and schema-validates a board list file.
func LoadBoards(path string) (*Boards, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read boards file %s: %w", path, err)
	}
	return ParseBoards(data)
}

// ParseBoards validates raw JSON against the boards schema and decodes it.
func ParseBoards(data []byte) (*Boards, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(boardsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate boards JSON: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return nil, fmt.Errorf("invalid boards file: %s", errs[0].String())
		}
		return nil, fmt.Errorf("invalid boards file")
	}

	var boards Boards
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("failed to parse boards JSON: %w", err)
	}
	return &boards, nil
}

// Empty reports whether no board is configured for any vendor.
func (b *Boards) Empty() bool {
	return b == nil ||
		(len(b.Greenhouse) == 0 && len(b.Lever) == 0 &&
			len(b.SmartRecruiters) == 0 && len(b.Ashby) == 0)
}
