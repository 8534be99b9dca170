package compilation

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iost-studio/contractkit/compilation/types"
	"github.com/iost-studio/contractkit/logging"
	"github.com/iost-studio/contractkit/logging/colors"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// DescriptorHashCacheFileName is the name of the database storing the hash of the last descriptor generated for
// each contract source.
const DescriptorHashCacheFileName = ".contractkit-descriptor-hashes.db"

// DescriptorHashCache stores the hash of a generated descriptor along with metadata.
type DescriptorHashCache struct {
	// Hash is the Keccak-256 hash of the canonical descriptor encoding.
	Hash string `json:"hash"`
	// Source is the path of the contract the descriptor was generated from.
	Source string `json:"source"`
	// Timestamp is when the hash was computed.
	Timestamp time.Time `json:"timestamp"`
}

// ComputeDescriptorHash computes the Keccak-256 fingerprint of a descriptor over its canonical CBOR encoding, so
// identical descriptors always hash identically regardless of how they were built. Returns the hex encoded hash.
func ComputeDescriptorHash(descriptor *types.ContractDescriptor) (string, error) {
	encoded, err := descriptor.EncodeCBOR()
	if err != nil {
		return "", err
	}

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(encoded)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// LoadDescriptorHashCache loads the cached descriptor hash of a source from the store in the specified directory.
// Returns nil if there is no store, no record for the source, or the store cannot be read.
func LoadDescriptorHashCache(directory string, source string) *DescriptorHashCache {
	if _, err := os.Stat(filepath.Join(directory, DescriptorHashCacheFileName)); err != nil {
		return nil
	}

	store, err := OpenDescriptorHashStore(directory)
	if err != nil {
		return nil
	}
	defer store.Close()

	cache, err := store.Get(source)
	if err != nil {
		return nil
	}
	return cache
}

// SaveDescriptorHashCache saves the descriptor hash cache to the store in the specified directory, creating the
// directory and store if needed.
// Returns an error if the cache cannot be written.
func SaveDescriptorHashCache(directory string, cache *DescriptorHashCache) error {
	store, err := OpenDescriptorHashStore(directory)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(cache); err != nil {
		return errors.Wrap(err, "failed to write descriptor hash cache")
	}
	return nil
}

// NotifyDescriptorHashStatus compares the hash of a descriptor with the cached hash of the last descriptor generated
// for the same source and logs whether the ABI changed. It also updates the cache with the new hash.
// Returns the computed hash.
func NotifyDescriptorHashStatus(
	descriptor *types.ContractDescriptor,
	source string,
	cacheDirectory string,
	logger *logging.Logger,
) (string, error) {
	currentHash, err := ComputeDescriptorHash(descriptor)
	if err != nil {
		return "", err
	}

	cached := LoadDescriptorHashCache(cacheDirectory, source)
	if cached != nil {
		if cached.Hash == currentHash {
			logger.Info(
				colors.Bold, "abi: ", colors.Reset,
				"the ABI is the ", colors.YellowBold, "same", colors.Reset,
				" as the last generated one (", formatDuration(time.Since(cached.Timestamp)), " ago)",
			)
		} else {
			logger.Warn(
				colors.Bold, "abi: ", colors.Reset,
				"the ABI has ", colors.RedBold, "changed", colors.Reset, " since the last generated one",
			)
		}
	} else {
		logger.Info(colors.Bold, "abi: ", colors.Reset, "generated a ", colors.GreenBold, "new", colors.Reset, " ABI")
	}

	newCache := &DescriptorHashCache{
		Hash:      currentHash,
		Source:    source,
		Timestamp: time.Now(),
	}
	if err := SaveDescriptorHashCache(cacheDirectory, newCache); err != nil {
		logger.Warn("Failed to save descriptor hash cache", err)
	}
	return currentHash, nil
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < time.Hour:
		return pluralize(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return pluralize(int(d.Hours()), "hour")
	default:
		return pluralize(int(d.Hours()/24), "day")
	}
}

// pluralize formats a count of a unit, appending an "s" unless the count is one.
func pluralize(count int, unit string) string {
	if count == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
