package notebook //nolint:testpackage // testing internal implementation.

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nb builds a notebook document from (cellType, source) pairs.
func nb(t *testing.T, cells ...[2]any) []byte {
	t.Helper()

	doc := map[string]any{
		"cells":          []any{},
		"nbformat":       4,
		"nbformat_minor": 5,
	}

	list := make([]any, 0, len(cells))
	for _, c := range cells {
		list = append(list, map[string]any{"cell_type": c[0], "source": c[1]})
	}

	doc["cells"] = list

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	return data
}

func TestExtractSource_ConcatenatesCodeCells(t *testing.T) {
	t.Parallel()

	data := nb(t,
		[2]any{"code", "import os"},
		[2]any{"markdown", "# not code"},
		[2]any{"code", "import sys"},
	)

	src, err := ExtractSource(data)
	require.NoError(t, err)
	assert.Equal(t, "import os\nimport sys", src)
}

func TestExtractSource_CellMagicExcludedWhole(t *testing.T) {
	t.Parallel()

	data := nb(t,
		[2]any{"code", "%%bash\nimport unused_in_other_lang"},
		[2]any{"code", "import math"},
	)

	src, err := ExtractSource(data)
	require.NoError(t, err)
	assert.Equal(t, "import math", src)
	assert.NotContains(t, src, "unused_in_other_lang")
}

func TestExtractSource_DropsMagicAndShellLines(t *testing.T) {
	t.Parallel()

	data := nb(t,
		[2]any{"code", "!pip install requests\n%matplotlib inline\n?print\nimport requests"},
	)

	src, err := ExtractSource(data)
	require.NoError(t, err)
	assert.Equal(t, "import requests", src)
}

func TestExtractSource_ListSource(t *testing.T) {
	t.Parallel()

	data := nb(t,
		[2]any{"code", []string{"import os\n", "import sys"}},
	)

	src, err := ExtractSource(data)
	require.NoError(t, err)
	assert.Equal(t, "import os\nimport sys", src)
}

func TestExtractSource_StripsIndentedResidualMagics(t *testing.T) {
	t.Parallel()

	data := nb(t,
		[2]any{"code", "for i in range(3):\n    %timeit i + 1\n    !echo hi\nimport os"},
	)

	src, err := ExtractSource(data)
	require.NoError(t, err)
	assert.Equal(t, "for i in range(3):\nimport os", src)
}

func TestExtractSource_KeepsModuloAndNegation(t *testing.T) {
	t.Parallel()

	// "%" and "!" mid-line are ordinary operators, not magics.
	data := nb(t,
		[2]any{"code", "x = 5 % 2\ny = x != 1"},
	)

	src, err := ExtractSource(data)
	require.NoError(t, err)
	assert.Equal(t, "x = 5 % 2\ny = x != 1", src)
}

func TestExtractSource_MalformedContainer(t *testing.T) {
	t.Parallel()

	_, err := ExtractSource([]byte("not json at all"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestExtractSource_EmptyNotebook(t *testing.T) {
	t.Parallel()

	src, err := ExtractSource(nb(t))
	require.NoError(t, err)
	assert.Empty(t, src)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(nb(t, [2]any{"code", "import os"})))

	// cells present but with the wrong shape.
	err := Validate([]byte(`{"cells": [{"cell_type": 42}]}`))
	assert.ErrorIs(t, err, ErrMalformed)

	// Not JSON.
	err = Validate([]byte("{"))
	assert.ErrorIs(t, err, ErrMalformed)
}
