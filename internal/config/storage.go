package config

import "fmt"

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"

	defaultDataFile = "data/expenses.json"
)

type StorageConfig struct {
	Type string `yaml:"kind"`
	File string `yaml:"data-file"`
}

func (s *StorageConfig) setDefaults() {
	if s.Type == "" {
		s.Type = StorageFile
	}
	if s.File == "" {
		s.File = defaultDataFile
	}
}

func (s *StorageConfig) validate() error {
	switch s.Type {
	case StorageFile, StoragePostgres:
		return nil
	}
	return fmt.Errorf("unknown storage kind %q", s.Type)
}

func (s *StorageConfig) Kind() string {
	return s.Type
}

func (s *StorageConfig) DataFile() string {
	return s.File
}
