package notebook

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// containerSchema is a minimal structural subset of the nbformat schema:
// enough to reject documents that are JSON but not notebooks, without
// pinning a specific nbformat minor version.
//
//go:embed container_schema.json
var containerSchema string

// Validate checks the structural shape of a notebook container. It is an
// optional pre-flight step before ExtractSource; failures wrap ErrMalformed.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(containerSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(details, "; "))
	}

	return nil
}
