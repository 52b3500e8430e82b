package scan //nolint:testpackage // testing internal implementation.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/pyimports/internal/catalog"
	"github.com/Sumatoshi-tech/pyimports/pkg/importmodel"
)

func TestClassify_RequiredWhenAnyColumnZero(t *testing.T) {
	t.Parallel()

	idx := importmodel.NewIndex()
	idx.Add("json", importmodel.Occurrence{File: "a.py", Line: 3, Column: 4})
	idx.Add("json", importmodel.Occurrence{File: "b.py", Line: 1, Column: 0})

	report := Classify(idx, nil, false)

	require.Len(t, report, 1)
	assert.Equal(t, importmodel.ClassRequired, report[0].Class)
	assert.Equal(t, 2, report[0].Count)
	assert.Empty(t, report[0].Evidence)
}

func TestClassify_OptionalCarriesEvidence(t *testing.T) {
	t.Parallel()

	idx := importmodel.NewIndex()
	idx.Add("ujson", importmodel.Occurrence{File: "a.py", Line: 2, Column: 4})
	idx.Add("ujson", importmodel.Occurrence{File: "c.py", Line: 9, Column: 8})

	report := Classify(idx, nil, false)

	require.Len(t, report, 1)
	assert.Equal(t, importmodel.ClassOptional, report[0].Class)

	require.Len(t, report[0].Evidence, 2)
	assert.Equal(t, "a.py", report[0].Evidence[0].File)
	assert.Equal(t, "c.py", report[0].Evidence[1].File)

	for _, occ := range report[0].Evidence {
		assert.Positive(t, occ.Column)
	}
}

func TestClassify_SortedByModuleName(t *testing.T) {
	t.Parallel()

	idx := importmodel.NewIndex()
	idx.Add("zlib", importmodel.Occurrence{File: "a.py", Line: 1, Column: 0})
	idx.Add("abc", importmodel.Occurrence{File: "a.py", Line: 2, Column: 0})
	idx.Add("numpy", importmodel.Occurrence{File: "a.py", Line: 3, Column: 0})

	report := Classify(idx, nil, false)

	require.Len(t, report, 3)
	assert.Equal(t, "abc", report[0].Name)
	assert.Equal(t, "numpy", report[1].Name)
	assert.Equal(t, "zlib", report[2].Name)
}

func TestClassify_CatalogFiltering(t *testing.T) {
	t.Parallel()

	idx := importmodel.NewIndex()
	idx.Add("os", importmodel.Occurrence{File: "a.py", Line: 1, Column: 0})

	cat := catalog.NewSet("os")

	// Excluded when the flag is set.
	report := Classify(idx, cat, true)
	assert.Empty(t, report)

	// Retained, and catalog membership irrelevant, when the flag is off.
	report = Classify(idx, cat, false)
	require.Len(t, report, 1)
	assert.Equal(t, "os", report[0].Name)
	assert.Equal(t, importmodel.ClassRequired, report[0].Class)
}

func TestClassify_NilCatalogWithExcludeFlag(t *testing.T) {
	t.Parallel()

	idx := importmodel.NewIndex()
	idx.Add("requests", importmodel.Occurrence{File: "a.py", Line: 1, Column: 0})

	report := Classify(idx, nil, true)
	require.Len(t, report, 1)
}

func TestClassify_EmptyIndex(t *testing.T) {
	t.Parallel()

	report := Classify(importmodel.NewIndex(), nil, false)
	assert.Empty(t, report)
}
