// Package validation implements the named-validator registry and the
// field schemas used by activity creation. Schemas are plain ordered
// validator lists per field so callers can copy and patch them before
// validating, without touching the registry itself.
package validation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dalrrd-emc/emc"
)

// Func checks a single field value. db is available for existence
// checks against the catalog tables.
type Func func(db *gorm.DB, value string) error

// Validator is a validation func together with the name it is
// registered (and removed from schemas) under.
type Validator struct {
	Name string
	Fn   Func
}

// Schema maps a field name to the ordered validators applied to it.
type Schema map[string][]Validator

// Copy returns a deep copy: patching the copy's validator lists never
// affects the original.
func (s Schema) Copy() Schema {
	out := make(Schema, len(s))
	for field, validators := range s {
		vs := make([]Validator, len(validators))
		copy(vs, validators)
		out[field] = vs
	}
	return out
}

// Remove drops the named validator from the field's chain. A missing
// field or validator name is silently skipped.
func (s Schema) Remove(field, name string) {
	validators, ok := s[field]
	if !ok {
		return
	}
	for i, v := range validators {
		if v.Name == name {
			s[field] = append(validators[:i:i], validators[i+1:]...)
			return
		}
	}
}

// Append adds a validator to the end of the field's chain.
func (s Schema) Append(field string, v Validator) {
	s[field] = append(s[field], v)
}

// Validate runs every field's chain against values, collecting all
// failures into one ValidationError. The "missing" sentinel from
// ignore_missing stops a chain without recording an error.
func (s Schema) Validate(db *gorm.DB, values map[string]string) error {
	failures := map[string]string{}
	for field, validators := range s {
		value := values[field]
		for _, v := range validators {
			err := v.Fn(db, value)
			if err == nil {
				continue
			}
			if errors.Is(err, errStopValidation) {
				break
			}
			failures[field] = err.Error()
			break
		}
	}
	if len(failures) > 0 {
		return &emc.ValidationError{Errors: failures}
	}
	return nil
}

var errStopValidation = errors.New("stop validation")

var registry = map[string]Validator{}

func register(name string, fn Func) Validator {
	v := Validator{Name: name, Fn: fn}
	registry[name] = v
	return v
}

// Get looks a validator up by name.
func Get(name string) (Validator, bool) {
	v, ok := registry[name]
	return v, ok
}
