package scan

import (
	"github.com/Sumatoshi-tech/pyimports/internal/catalog"
	"github.com/Sumatoshi-tech/pyimports/pkg/importmodel"
)

// Classify derives the classified report from a finalized index. A module
// is required when any of its occurrences sits at column zero, meaning it
// is imported unindented at module scope somewhere; otherwise it is
// optional and its nonzero-column occurrences are kept as evidence.
//
// When excludeCatalog is set, modules found in cat are dropped from the
// report regardless of classification. The report is ordered
// lexicographically by module name, so identical inputs always yield
// byte-identical output.
func Classify(idx *importmodel.Index, cat catalog.Catalog, excludeCatalog bool) importmodel.Report {
	modules := idx.Modules()
	report := make(importmodel.Report, 0, len(modules))

	for _, name := range modules {
		if excludeCatalog && cat != nil && cat.Contains(name) {
			continue
		}

		occs := idx.Occurrences(name)
		entry := importmodel.ModuleReport{
			Name:  name,
			Class: importmodel.ClassOptional,
			Count: len(occs),
		}

		for _, occ := range occs {
			if occ.Column == 0 {
				entry.Class = importmodel.ClassRequired

				break
			}
		}

		if entry.Class == importmodel.ClassOptional {
			for _, occ := range occs {
				if occ.Column > 0 {
					entry.Evidence = append(entry.Evidence, occ)
				}
			}
		}

		report = append(report, entry)
	}

	return report
}
