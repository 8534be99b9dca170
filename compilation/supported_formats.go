package compilation

import (
	"fmt"

	"github.com/iost-studio/contractkit/compilation/types"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DescriptorEncoder serializes a descriptor into an output format.
type DescriptorEncoder func(descriptor *types.ContractDescriptor) ([]byte, error)

// descriptorEncoders is a mapping of output format identifier to the encoder which produces it. Each format in this
// mapping is considered a supported output format. Items are populated in the init method.
var descriptorEncoders map[string]DescriptorEncoder

// init is called once per inclusion of a package. This method is used on startup to populate descriptorEncoders.
func init() {
	formats := []struct {
		name    string
		encoder DescriptorEncoder
	}{
		{"json", func(descriptor *types.ContractDescriptor) ([]byte, error) {
			text, err := descriptor.Marshal()
			return []byte(text), err
		}},
		{"cbor", func(descriptor *types.ContractDescriptor) ([]byte, error) {
			return descriptor.EncodeCBOR()
		}},
	}

	descriptorEncoders = make(map[string]DescriptorEncoder)
	for _, format := range formats {
		// Each format should have a unique identifier.
		if _, exists := descriptorEncoders[format.name]; exists {
			panic(fmt.Errorf("the output format '%s' is registered with more than one encoder", format.name))
		}
		descriptorEncoders[format.name] = format.encoder
	}
}

// GetSupportedOutputFormats obtains the sorted list of output format identifiers supported by EncodeDescriptor.
func GetSupportedOutputFormats() []string {
	formats := maps.Keys(descriptorEncoders)
	slices.Sort(formats)
	return formats
}

// IsSupportedOutputFormat returns a boolean status indicating if an output format identifier is supported.
func IsSupportedOutputFormat(format string) bool {
	_, ok := descriptorEncoders[format]
	return ok
}

// EncodeDescriptor serializes a descriptor into the given output format.
// Returns an error if the format is unsupported or encoding fails.
func EncodeDescriptor(format string, descriptor *types.ContractDescriptor) ([]byte, error) {
	encoder, ok := descriptorEncoders[format]
	if !ok {
		return nil, fmt.Errorf("output format '%s' is unsupported, expected one of %v", format, GetSupportedOutputFormats())
	}
	return encoder(descriptor)
}
