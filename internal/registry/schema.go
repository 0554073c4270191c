package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Published schema documents. `ego schema` prints these; Load
// validates every registry file against them before decoding.
var (
	//go:embed schemas/charter.schema.json
	CharterSchema string

	//go:embed schemas/behavior.schema.json
	BehaviorSchema string
)

var (
	charterSchema  = mustCompile("charter.schema.json", CharterSchema)
	behaviorSchema = mustCompile("behavior.schema.json", BehaviorSchema)
)

func mustCompile(name, doc string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, strings.NewReader(doc)); err != nil {
		panic(fmt.Sprintf("registry: bad embedded schema %s: %v", name, err))
	}
	return c.MustCompile(name)
}

// ValidationError reports one schema or semantic violation, qualified
// by the file it came from and the location within the document.
type ValidationError struct {
	File string
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// validateSchema checks raw YAML bytes against a compiled schema and
// returns one ValidationError per violation.
func validateSchema(file string, raw []byte, schema *jsonschema.Schema) []error {
	doc, err := yamlToJSONValue(raw)
	if err != nil {
		return []error{&ValidationError{File: file, Msg: err.Error()}}
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return flattenSchemaErrors(file, ve)
		}
		return []error{&ValidationError{File: file, Msg: err.Error()}}
	}
	return nil
}

// flattenSchemaErrors collects the leaf causes, which carry the
// specific instance locations.
func flattenSchemaErrors(file string, ve *jsonschema.ValidationError) []error {
	if len(ve.Causes) == 0 {
		return []error{&ValidationError{
			File: file,
			Path: ve.InstanceLocation,
			Msg:  ve.Message,
		}}
	}
	var out []error
	for _, c := range ve.Causes {
		out = append(out, flattenSchemaErrors(file, c)...)
	}
	return out
}

// yamlToJSONValue decodes YAML and round-trips it through JSON so the
// validator sees the value shapes it expects.
func yamlToJSONValue(raw []byte) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
