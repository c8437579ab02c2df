package snapshot

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// record is the serialized shape of one account in the snapshot file: a JSON
// object keyed by account id holding {id, balance} records.
type record struct {
	ID      string  `json:"id"`
	Balance float64 `json:"balance"`
}

// FileStore keeps the snapshot in a single JSON file. Writes go to a tmp
// file first and are renamed into place, so a crash mid-write never leaves a
// torn snapshot behind.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (map[string]float64, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, errors.Wrap(err, "open snapshot file")
	}

	defer f.Close()

	records := make(map[string]record)
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "decode snapshot file")
	}

	balances := make(map[string]float64, len(records))
	for id, r := range records {
		balances[id] = r.Balance
	}

	return balances, nil
}

func (s *FileStore) Save(balances map[string]float64) error {
	records := make(map[string]record, len(balances))
	for id, b := range balances {
		records[id] = record{ID: id, Balance: b}
	}

	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "create snapshot tmp file")
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		f.Close()
		return errors.Wrap(err, "encode snapshot")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close snapshot tmp file")
	}

	return errors.Wrap(os.Rename(tmp, s.Path), "replace snapshot file")
}
