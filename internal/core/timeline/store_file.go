// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/reignline/internal/chronicle"
)

// # File Repository

// FileRepository serves a dataset read once from a YAML or JSON file.
// The snapshot never changes, so concurrent reads need no locking.
type FileRepository struct {
	path    string
	dataset chronicle.Dataset
}

// NewFileRepository reads and decodes the dataset at path.
func NewFileRepository(path string) (*FileRepository, error) {
	dataset, err := ReadDatasetFile(path)
	if err != nil {
		return nil, err
	}
	return &FileRepository{path: path, dataset: dataset}, nil
}

// Load returns the snapshot.
func (repository *FileRepository) Load(_ context.Context) (chronicle.Dataset, error) {
	return repository.dataset, nil
}

// Ping always succeeds once the file has been read.
func (repository *FileRepository) Ping(_ context.Context) error {
	return nil
}

func (repository *FileRepository) Source() string { return "file" }

// # Decoding

// ReadDatasetFile decodes a dataset file. The format follows the extension:
// .json is JSON, anything else is YAML.
func ReadDatasetFile(path string) (chronicle.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return chronicle.Dataset{}, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	dataset, err := DecodeDataset(raw, filepath.Ext(path))
	if err != nil {
		return chronicle.Dataset{}, fmt.Errorf("dataset: decode %s: %w", path, err)
	}
	return dataset, nil
}

// DecodeDataset decodes raw bytes in the format named by ext. Unknown keys are rejected.
func DecodeDataset(raw []byte, ext string) (chronicle.Dataset, error) {
	var dataset chronicle.Dataset

	if strings.EqualFold(ext, ".json") {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&dataset); err != nil {
			return chronicle.Dataset{}, err
		}
		return dataset, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&dataset); err != nil {
		return chronicle.Dataset{}, err
	}
	return dataset, nil
}

// EncodeDataset writes a dataset as YAML.
func EncodeDataset(dataset chronicle.Dataset) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(dataset); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
