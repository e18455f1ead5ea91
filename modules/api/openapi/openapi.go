// Package openapi embeds the HTTP contract of the service.
package openapi

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Path is where the document is served.
const Path = "/openapi.yaml"

//go:embed profile.yaml
var document []byte

var (
	loadOnce sync.Once
	doc      *openapi3.T
	loadErr  error
)

// Raw returns the embedded document bytes.
func Raw() []byte {
	return document
}

// Load parses and validates the embedded document once.
func Load() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		d, err := loader.LoadFromData(document)
		if err != nil {
			loadErr = fmt.Errorf("openapi: load: %w", err)
			return
		}
		if err := d.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("openapi: validate: %w", err)
			return
		}
		doc = d
	})
	return doc, loadErr
}
