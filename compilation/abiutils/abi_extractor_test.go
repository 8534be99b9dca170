package abiutils

import (
	"errors"
	"testing"

	"github.com/iost-studio/contractkit/compilation/parser"
	"github.com/iost-studio/contractkit/compilation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extract parses source and extracts its ABI.
func extract(t *testing.T, source string) ([]types.ABIEntry, error) {
	result, err := parser.Parse(source)
	require.NoError(t, err)
	return ExtractABI(result)
}

// entryNames returns the names of the provided ABI entries.
func entryNames(entries []types.ABIEntry) []string {
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names
}

func TestExtractABI_TokenContract(t *testing.T) {
	t.Parallel()

	source := `class Token {
    init() {
    }

    /**
     * @param {string} to
     * @param {number} amount
     */
    transfer(to, amount) {
        this._helper(amount);
    }

    _helper(x) {
        return x;
    }
}

module.exports = Token;
`
	entries, err := extract(t, source)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "transfer", entries[0].Name)
	assert.Equal(t, []types.ParamType{types.ParamTypeString, types.ParamTypeNumber}, entries[0].Args)
	assert.NotNil(t, entries[0].AmountLimit)
	assert.Empty(t, entries[0].AmountLimit)
	assert.Equal(t, "", entries[0].Description)
}

func TestExtractABI_DeclarationOrder(t *testing.T) {
	t.Parallel()

	source := `class C {
    zeta() {}
    init() {}
    alpha(a) {}
    _hidden() {}
    mid(a, b, c) {}
}
module.exports = C;`
	entries, err := extract(t, source)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, entryNames(entries))
	assert.Len(t, entries[2].Args, 3)
	for _, arg := range entries[2].Args {
		assert.Equal(t, types.ParamTypeString, arg)
	}
}

func TestExtractABI_Annotations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		comment  string
		expected []types.ParamType
	}{
		{
			name:     "type first",
			comment:  "/** @param {number} x @param {json} y */",
			expected: []types.ParamType{types.ParamTypeNumber, types.ParamTypeJSON},
		},
		{
			name:     "name first",
			comment:  "/** @param x {bool} @param y {number} */",
			expected: []types.ParamType{types.ParamTypeBool, types.ParamTypeNumber},
		},
		{
			name:     "boolean alias",
			comment:  "// @param {boolean} y",
			expected: []types.ParamType{types.ParamTypeString, types.ParamTypeBool},
		},
		{
			name:     "undocumented",
			comment:  "// plain comment",
			expected: []types.ParamType{types.ParamTypeString, types.ParamTypeString},
		},
		{
			name:     "prefix of another name",
			comment:  "/** @param {number} xy */",
			expected: []types.ParamType{types.ParamTypeString, types.ParamTypeString},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			source := "class C {\n init() {}\n " + test.comment + "\n f(x, y) {}\n}\nmodule.exports = C;"
			entries, err := extract(t, source)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, test.expected, entries[0].Args)
		})
	}
}

func TestExtractABI_OnlyClosestCommentConsulted(t *testing.T) {
	t.Parallel()

	source := `class C {
    init() {}
    /** @param {number} x */
    // unrelated
    f(x) {}
}
module.exports = C;`
	entries, err := extract(t, source)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []types.ParamType{types.ParamTypeString}, entries[0].Args)
}

func TestExtractABI_CommentWindowBoundedByPreviousMethod(t *testing.T) {
	t.Parallel()

	// The annotation precedes the private method, so it is out of the window of g
	source := `class C {
    init() {}
    /** @param {number} x */
    _p(x) {}
    g(x) {}
}
module.exports = C;`
	entries, err := extract(t, source)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "g", entries[0].Name)
	assert.Equal(t, []types.ParamType{types.ParamTypeString}, entries[0].Args)
}

func TestExtractABI_CommentInsidePreviousMethodIgnored(t *testing.T) {
	t.Parallel()

	source := `class C {
    init() {}
    f(x) {
        // @param {number} x
    }
    g(x) {}
}
module.exports = C;`
	entries, err := extract(t, source)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []types.ParamType{types.ParamTypeString}, entries[1].Args)
}

func TestExtractABI_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		kind   error
	}{
		{
			name:   "no export",
			source: "class C { init() {} }",
			kind:   types.ErrNoExport,
		},
		{
			name:   "export of non identifier",
			source: "class C { init() {} }\nmodule.exports = { C };",
			kind:   types.ErrNoExport,
		},
		{
			name:   "unresolved class",
			source: "class C { init() {} }\nmodule.exports = D;",
			kind:   types.ErrClassResolution,
		},
		{
			name:   "constructor",
			source: "class C { init() {} constructor() {} }\nmodule.exports = C;",
			kind:   types.ErrConstructorNotAllowed,
		},
		{
			name:   "constructor without init",
			source: "class C { constructor() {} }\nmodule.exports = C;",
			kind:   types.ErrConstructorNotAllowed,
		},
		{
			name:   "missing init",
			source: "class C { f() {} }\nmodule.exports = C;",
			kind:   types.ErrMissingInit,
		},
		{
			name:   "destructured parameter",
			source: "class C { init() {} f({a}) {} }\nmodule.exports = C;",
			kind:   types.ErrInvalidParameter,
		},
		{
			name:   "rest parameter",
			source: "class C { init() {} f(...a) {} }\nmodule.exports = C;",
			kind:   types.ErrInvalidParameter,
		},
		{
			name:   "default parameter",
			source: "class C { init() {} f(a = 1) {} }\nmodule.exports = C;",
			kind:   types.ErrInvalidParameter,
		},
		{
			name:   "unknown annotation type",
			source: "class C { init() {}\n/** @param {object} a */\nf(a) {} }\nmodule.exports = C;",
			kind:   types.ErrUnknownParamType,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			entries, err := extract(t, test.source)
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.True(t, errors.Is(err, test.kind), "unexpected error: %v", err)
		})
	}
}

func TestExtractABI_PrivateMethodParametersNotChecked(t *testing.T) {
	t.Parallel()

	entries, err := extract(t, "class C { init() {} _f({a}) {} }\nmodule.exports = C;")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}

func TestExtractABI_LastExportWins(t *testing.T) {
	t.Parallel()

	source := "class A { init() {} a() {} }\nclass B { init() {} b() {} }\nmodule.exports = A;\nmodule.exports = B;"
	entries, err := extract(t, source)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, entryNames(entries))
}

func TestExtractABI_SkipsNonIdentifierKeys(t *testing.T) {
	t.Parallel()

	source := "class C { init() {} ['computed']() {} 'quoted'() {} plain() {} }\nmodule.exports = C;"
	entries, err := extract(t, source)
	require.NoError(t, err)
	assert.Equal(t, []string{"plain"}, entryNames(entries))
}

func TestExtractABI_EmptyProgram(t *testing.T) {
	t.Parallel()

	_, err := ExtractABI(&types.ParseResult{Program: &types.Program{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidSource))
}
