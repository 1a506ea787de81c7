package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "history.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// kvFile is the on-disk shape of the store: a flat map of logical keys
// to opaque string blobs.
type kvFile struct {
	Entries map[string]string `json:"entries" yaml:"entries" toml:"entries"`
}

// FileKeyValue implements the KeyValue interface using a single data
// file. It supports JSON, YAML, and TOML formats, uses file-level
// locking, and verifies a checksum sidecar against corruption.
type FileKeyValue struct {
	filePath string
	entries  map[string]string
	flk      *flock.Flock
	format   string
}

// NewFileKeyValue creates a new instance of FileKeyValue.
// It does not initialize the store; Initialize must be called separately.
func NewFileKeyValue() *FileKeyValue {
	return &FileKeyValue{entries: make(map[string]string)}
}

// Initialize configures the FileKeyValue. It expects a 'dataFile' key in
// the config map specifying the path to the data file, defaulting to
// 'history.json' in the current working directory. Existing entries are
// loaded if the file exists and a file lock is established.
func (s *FileKeyValue) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)
	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	s.entries = make(map[string]string)
	return s.loadInternal()
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadInternal reads the data file, verifies its checksum, and
// unmarshals the entries. It assumes the lock is held.
func (s *FileKeyValue) loadInternal() error {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.entries = make(map[string]string)
			_ = os.Remove(checksumFilePath)
			if f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o600); createErr != nil {
				return fmt.Errorf("failed to create data file %s: %w", s.filePath, createErr)
			} else {
				_ = f.Close()
			}
			if err := os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644); err != nil {
				fmt.Printf("Warning: could not write initial checksum file %s: %v\n", checksumFilePath, err)
			}
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if actual := calculateChecksum(data); actual != expectedChecksum {
			return fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", s.filePath, expectedChecksum, actual)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, err)
	}

	if len(data) == 0 {
		_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644) // best effort
		s.entries = make(map[string]string)
		return nil
	}

	var file kvFile
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to unmarshal JSON from %s: %w", s.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to unmarshal YAML from %s: %w", s.filePath, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to unmarshal TOML from %s: %w", s.filePath, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	if file.Entries == nil {
		file.Entries = make(map[string]string)
	}
	s.entries = file.Entries
	return nil
}

// saveInternal writes the entries to the data file, then writes its
// checksum. Both writes go through temp files and atomic renames. It
// assumes the lock is held.
func (s *FileKeyValue) saveInternal() error {
	file := kvFile{Entries: s.entries}

	var marshaledData []byte
	var err error
	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(file, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(file)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(file); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal entries to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o600); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}
	if err := os.WriteFile(tempChecksumFilePath, []byte(calculateChecksum(marshaledData)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("CRITICAL: data file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", s.filePath, checksumFilePath, err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *FileKeyValue) Get(key string) ([]byte, bool, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, false, fmt.Errorf("could not lock file for get: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadInternal(); err != nil {
		return nil, false, err
	}
	value, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set stores value under key, replacing any previous value.
func (s *FileKeyValue) Set(key string, value []byte) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for set: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadInternal(); err != nil {
		return err
	}
	s.entries[key] = string(value)
	return s.saveInternal()
}

// Delete removes key from the store.
func (s *FileKeyValue) Delete(key string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for delete: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadInternal(); err != nil {
		return err
	}
	delete(s.entries, key)
	return s.saveInternal()
}

// Close releases the file lock.
func (s *FileKeyValue) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
