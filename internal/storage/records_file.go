package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	serrors "github.com/chronoworld/showtimes/internal/errors"
	"github.com/chronoworld/showtimes/pkg/types"
)

// LoadRecordsFile reads a JSON or YAML list of records, used to seed a
// MemoryTable for local runs.
func LoadRecordsFile(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.NewStorageError(serrors.CodeDecodeFailed, "failed to read records file", err)
	}

	var maps []map[string]interface{}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &maps)
	case ".json":
		err = json.Unmarshal(data, &maps)
	default:
		return nil, serrors.NewStorageError(serrors.CodeDecodeFailed,
			fmt.Sprintf("unsupported records file format: %s", ext), nil)
	}
	if err != nil {
		return nil, serrors.NewStorageError(serrors.CodeDecodeFailed,
			fmt.Sprintf("failed to parse records file %s", path), err)
	}

	records := make([]types.Record, 0, len(maps))
	for _, m := range maps {
		records = append(records, types.Record(m))
	}
	return records, nil
}
