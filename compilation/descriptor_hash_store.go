package compilation

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/iost-studio/contractkit/utils"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// descriptorHashBucket is the bucket holding one DescriptorHashCache record per contract source path.
var descriptorHashBucket = []byte("descriptorHashes")

// DescriptorHashStore persists the descriptor hash of every contract generated in a directory, keyed by the
// contract's source path.
type DescriptorHashStore struct {
	db *bbolt.DB
}

// OpenDescriptorHashStore opens, creating it if needed, the descriptor hash store in the given directory.
// Returns an error if the directory or database cannot be created.
func OpenDescriptorHashStore(directory string) (*DescriptorHashStore, error) {
	if err := utils.MakeDirectory(directory); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(filepath.Join(directory, DescriptorHashCacheFileName), 0600,
		&bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "could not open descriptor hash store")
	}

	// create the bucket if it doesn't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(descriptorHashBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}
	return &DescriptorHashStore{db: db}, nil
}

// Get returns the record stored for a source path, or nil if there is none.
func (s *DescriptorHashStore) Get(source string) (*DescriptorHashCache, error) {
	var record *DescriptorHashCache
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(descriptorHashBucket).Get([]byte(source))
		if data == nil {
			return nil
		}
		record = &DescriptorHashCache{}
		return json.Unmarshal(data, record)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not read descriptor hash of '%s'", source)
	}
	return record, nil
}

// Put stores a record under its source path, replacing any previous record for the same source.
func (s *DescriptorHashStore) Put(record *DescriptorHashCache) error {
	if record.Source == "" {
		return errors.New("descriptor hash record has no source")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return errors.WithStack(err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(descriptorHashBucket).Put([]byte(record.Source), data)
	})
}

// Close releases the underlying database.
func (s *DescriptorHashStore) Close() error {
	return s.db.Close()
}
