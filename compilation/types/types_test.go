package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeParamType(t *testing.T) {
	tests := map[string]ParamType{
		"string":  ParamTypeString,
		"number":  ParamTypeNumber,
		"bool":    ParamTypeBool,
		"boolean": ParamTypeBool,
		"json":    ParamTypeJSON,
	}
	for token, expected := range tests {
		paramType, err := NormalizeParamType(token)
		require.NoError(t, err)
		assert.Equal(t, expected, paramType)
	}

	for _, token := range []string{"object", "Number", "int", ""} {
		_, err := NormalizeParamType(token)
		assert.True(t, errors.Is(err, ErrUnknownParamType), "token %q should be rejected", token)
	}
}

func TestContractError(t *testing.T) {
	err := NewContractError(ErrMissingInit, &Range{Start: 4, End: 9}, "class '%s' has no init method", "C")
	assert.True(t, errors.Is(err, ErrMissingInit))
	assert.False(t, errors.Is(err, ErrNoExport))
	assert.Equal(t, "init not found: class 'C' has no init method (at offset 4)", err.Error())

	err = NewContractError(ErrParse, nil, "unexpected token")
	assert.Equal(t, "parse error: unexpected token", err.Error())
}

func TestNewABIEntry(t *testing.T) {
	entry := NewABIEntry("transfer", 2)
	assert.Equal(t, []ParamType{ParamTypeString, ParamTypeString}, entry.Args)
	assert.NotNil(t, entry.AmountLimit)
	assert.Empty(t, entry.AmountLimit)
	assert.Equal(t, "", entry.Description)
}

func TestContractDescriptor_MarshalEmitsEmptyArrays(t *testing.T) {
	descriptor := &ContractDescriptor{
		Language: "javascript",
		Version:  "1.0.0",
		ABI:      []ABIEntry{{Name: "f"}},
	}
	text, err := descriptor.Marshal()
	require.NoError(t, err)
	assert.Contains(t, text, `"args": []`)
	assert.Contains(t, text, `"amount_limit": []`)
	assert.NotContains(t, text, "null")
	assert.True(t, strings.HasPrefix(text, "{\n    \"language\""))

	decoded, err := UnmarshalContractDescriptor([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, "f", decoded.ABI[0].Name)

	// The receiver is left untouched
	assert.Nil(t, descriptor.ABI[0].Args)
}

func TestContractDescriptor_EncodeCBORDeterministic(t *testing.T) {
	descriptor := &ContractDescriptor{Language: "javascript", Version: "1.0.0", ABI: []ABIEntry{NewABIEntry("f", 1)}}
	first, err := descriptor.EncodeCBOR()
	require.NoError(t, err)
	second, err := descriptor.EncodeCBOR()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestChildrenAndInspect(t *testing.T) {
	method := &MethodDefinition{Key: &Identifier{Name: "m"}}
	class := &ClassDeclaration{
		ID:   &Identifier{Name: "A"},
		Body: &ClassBody{Members: []Node{method}},
	}

	children := Children(class)
	require.Len(t, children, 2, "nil super class should be skipped")
	assert.Equal(t, class.ID, children[0])
	assert.Equal(t, class.Body, children[1])

	// The method has no value, so only its key is a child
	assert.Equal(t, []Node{method.Key}, Children(method))

	var names []string
	Inspect(&Program{Body: []Node{class}}, func(node Node) bool {
		if ident, ok := node.(*Identifier); ok {
			names = append(names, ident.Name)
		}
		return true
	})
	assert.Equal(t, []string{"A", "m"}, names)
}

func TestRangeContains(t *testing.T) {
	outer := Range{Start: 0, End: 10}
	assert.True(t, outer.Contains(Range{Start: 0, End: 10}))
	assert.True(t, outer.Contains(Range{Start: 2, End: 5}))
	assert.False(t, outer.Contains(Range{Start: 5, End: 11}))
}
