package input

import (
	"bytes"
	_ "embed"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/teranos/typedoc/errors"
)

//go:embed project.schema.json
var projectSchema []byte

const projectSchemaURL = "mem://schemas/project.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func envelopeSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(projectSchema))
		if err != nil {
			compileErr = errors.Wrap(err, "decode project schema")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(projectSchemaURL, doc); err != nil {
			compileErr = errors.Wrap(err, "register project schema")
			return
		}
		compiled, compileErr = c.Compile(projectSchemaURL)
		if compileErr != nil {
			compileErr = errors.Wrap(compileErr, "compile project schema")
		}
	})
	return compiled, compileErr
}

// CheckEnvelope validates the root object of a document: an integer id, a
// string name, kindString "Project" and, when present, an object of flags
// and an array of children. Nested nodes are left to the decoder.
func CheckEnvelope(doc any) error {
	s, err := envelopeSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return errors.WithHint(
			errors.Wrap(err, "document is not a TypeDoc project"),
			"generate the input with `typedoc --json <file>`")
	}
	return nil
}
