package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Parse decodes a metadata.json document.
func Parse(data []byte) (*BuildMetadata, error) {
	var m BuildMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}

	if err := validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

func validate(m *BuildMetadata) error {
	if m.FileMetadata == nil {
		return errors.New("metadata has no fileMetadata section")
	}
	return nil
}
