package types

import (
	"encoding/json"

	"github.com/fxamacker/cbor"
	"github.com/pkg/errors"
)

// ContractDescriptor is the artifact produced by ABI generation: the contract language, the descriptor format
// version and the ordered list of entry points.
type ContractDescriptor struct {
	// Language is the language tag of the contract source.
	Language string `json:"language" cbor:"language"`
	// Version is the descriptor format version.
	Version string `json:"version" cbor:"version"`
	// ABI holds one entry per public, non-initializer method in class-body declaration order.
	ABI []ABIEntry `json:"abi" cbor:"abi"`
}

// normalized returns a copy of the descriptor whose nil slices are replaced with empty ones, so that encodings emit
// `[]` rather than `null`.
func (d *ContractDescriptor) normalized() ContractDescriptor {
	out := ContractDescriptor{
		Language: d.Language,
		Version:  d.Version,
		ABI:      make([]ABIEntry, len(d.ABI)),
	}
	for i, entry := range d.ABI {
		if entry.Args == nil {
			entry.Args = make([]ParamType, 0)
		}
		if entry.AmountLimit == nil {
			entry.AmountLimit = make([]AmountLimit, 0)
		}
		out.ABI[i] = entry
	}
	return out
}

// Marshal serializes the descriptor into its canonical textual form: JSON indented with four spaces.
func (d *ContractDescriptor) Marshal() (string, error) {
	b, err := json.MarshalIndent(d.normalized(), "", "    ")
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(b), nil
}

// EncodeCBOR serializes the descriptor into a canonical CBOR encoding.
func (d *ContractDescriptor) EncodeCBOR() ([]byte, error) {
	b, err := cbor.Marshal(d.normalized(), cbor.CanonicalEncOptions())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// UnmarshalContractDescriptor parses a descriptor from its JSON form.
func UnmarshalContractDescriptor(data []byte) (*ContractDescriptor, error) {
	var descriptor ContractDescriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return nil, errors.WithStack(err)
	}
	return &descriptor, nil
}
