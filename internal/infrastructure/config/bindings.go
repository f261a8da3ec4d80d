package config

import (
	"errors"
	"fmt"
	"path"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/younwookim/framecore/internal/application/input"
)

// Bindings errors. Both are fatal at load time.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownKey    = errors.New("unknown key")
)

// BindingsFile is the raw content of a bindings file: action name to one or
// more key names.
type BindingsFile map[string][]string

// ParseBindings decodes a bindings file. Files ending in .json use HCL's
// JSON syntax; anything else is native HCL. Each attribute value is either
// a key name or a list of key names:
//
//	move_left = ["A", "ArrowLeft"]
//	jump      = "Space"
func ParseBindings(data []byte, filename string) (BindingsFile, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if path.Ext(filename) == ".json" {
		file, diags = parser.ParseJSON(data, filename)
	} else {
		file, diags = parser.ParseHCL(data, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}

	out := make(BindingsFile, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s in %s: %w", name, filename, diags)
		}
		keys, err := keyNames(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", filename, name, err)
		}
		out[name] = keys
	}
	return out, nil
}

func keyNames(v cty.Value) ([]string, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, errors.New("key name must be a string or a list of strings")
	}
	ty := v.Type()
	if ty == cty.String {
		return []string{v.AsString()}, nil
	}
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("key name must be a string or a list of strings, got %s", ty.FriendlyName())
	}

	var names []string
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || elem.Type() != cty.String {
			return nil, fmt.Errorf("key list entries must be strings, got %s", elem.Type().FriendlyName())
		}
		names = append(names, elem.AsString())
	}
	return names, nil
}

// Build resolves every action and key name. All problems are reported
// together; any problem fails the whole set.
func (f BindingsFile) Build() (*input.Bindings, error) {
	actions := make([]string, 0, len(f))
	for name := range f {
		actions = append(actions, name)
	}
	sort.Strings(actions)

	b := input.NewBindings()
	var errs []error
	for _, name := range actions {
		action, err := input.ParseAction(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAction, name))
			continue
		}
		for _, keyName := range f[name] {
			key, err := input.ParseKey(keyName)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %q for action %s", ErrUnknownKey, keyName, name))
				continue
			}
			if err := b.Bind(key, action); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b, nil
}
