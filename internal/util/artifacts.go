package util

import (
	"encoding/json"
	"fmt"
)

func WriteJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return WriteBytesAtomic(path, append(b, '\n'))
}
