package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/logger"
)

const filePerm = 0o644

type fileConfig interface {
	DataFile() string
}

// FileStorage keeps the whole state as one JSON document on disk.
type FileStorage struct {
	path string
}

func NewFileStorage(config fileConfig) *FileStorage {
	return &FileStorage{path: config.DataFile()}
}

// Load never fails: a missing, unreadable or malformed file yields an empty state.
func (s *FileStorage) Load(_ context.Context) expense.State {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("data file not found, starting empty", zap.String("path", s.path))
		} else {
			logger.Warn("cannot read data file, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return expense.NewState()
	}
	return decodeState(raw, s.path)
}

func (s *FileStorage) Save(_ context.Context, state expense.State) error {
	raw, err := encodeState(state)
	if err != nil {
		return errors.Wrap(err, "save state")
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "save state")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "save state")
	}
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "save state")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "save state")
	}
	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return errors.Wrap(err, "save state")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "save state")
}

func encodeState(state expense.State) ([]byte, error) {
	if state == nil {
		state = expense.NewState()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeState(raw []byte, source string) expense.State {
	var state expense.State
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Warn("malformed state, starting empty", zap.String("source", source), zap.Error(err))
		return expense.NewState()
	}
	if state == nil {
		return expense.NewState()
	}
	for userID, days := range state {
		if days == nil {
			state[userID] = make(expense.Days)
			continue
		}
		for day, bucket := range days {
			if bucket == nil {
				delete(days, day)
				continue
			}
			if bucket.Expenses == nil {
				bucket.Expenses = []expense.Expense{}
			}
		}
	}
	return state
}
