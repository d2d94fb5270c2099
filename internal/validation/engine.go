// Package validation checks decoded JSON payloads against the type
// descriptors registered in a schema.Lookup. Failures are always expressed
// as data (a Result holding zero or more field errors), never as Go errors.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/RamiObaid92/AIProjectTest/internal/schema"
)

// dateTimeLayouts are the ISO-8601 profiles accepted for datetime fields
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Engine validates payloads against descriptors resolved from a Lookup.
// It is stateless apart from the immutable lookup reference and is safe
// for concurrent use.
type Engine struct {
	lookup *schema.Lookup
}

// NewEngine creates a validation engine backed by the given lookup
func NewEngine(lookup *schema.Lookup) *Engine {
	return &Engine{lookup: lookup}
}

// Validate checks a decoded JSON payload against the descriptor for the
// given type key. The payload is the tree produced by encoding/json:
// map[string]any, []any, string, float64 or json.Number, bool, or nil.
//
// Errors accumulate across all declared fields in one pass; fields present
// in the payload but not declared in the descriptor are ignored.
func (e *Engine) Validate(typeKey string, payload any) *Result {
	result := &Result{}

	descriptor, ok := e.lookup.Get(typeKey)
	if !ok {
		result.add("type", CodeUnknownType, fmt.Sprintf("unknown resource type %q", typeKey))
		return result
	}

	object, ok := payload.(map[string]any)
	if !ok {
		result.add("", CodeInvalidPayloadShape, "payload must be a JSON object")
		return result
	}

	for i := range descriptor.Fields {
		e.validateField(&descriptor.Fields[i], object, result)
	}

	return result
}

// validateField accumulates the errors for a single field definition.
// An absent or null value only matters for required fields; a wrongly
// typed value stops further checks for the field; length and pattern
// checks on a well-typed string are independent of each other.
func (e *Engine) validateField(field *schema.FieldDefinition, object map[string]any, result *Result) {
	value, present := object[field.Name]
	if !present || value == nil {
		if field.Required {
			result.add(field.Name, CodeRequired, fmt.Sprintf("%s is required", field.Name))
		}
		return
	}

	if !matchesDataType(field.DataType, value) {
		result.add(field.Name, CodeTypeMismatch,
			fmt.Sprintf("%s must be of type %s", field.Name, field.DataType))
		return
	}

	if field.DataType != schema.TypeString {
		return
	}
	str := value.(string)

	if field.MaxLength != nil && utf8.RuneCountInString(str) > *field.MaxLength {
		result.add(field.Name, CodeMaxLength,
			fmt.Sprintf("%s must be at most %d characters", field.Name, *field.MaxLength))
	}

	if field.Pattern != "" {
		pattern, err := regexp.Compile(field.Pattern)
		// A malformed pattern in the descriptor must not fail the payload;
		// the check is skipped for that field.
		if err == nil && !pattern.MatchString(str) {
			result.add(field.Name, CodePattern,
				fmt.Sprintf("%s does not match the required pattern", field.Name))
		}
	}
}

// matchesDataType checks a decoded JSON value against the declared type
func matchesDataType(dataType schema.DataType, value any) bool {
	switch dataType {
	case schema.TypeString:
		_, ok := value.(string)
		return ok

	case schema.TypeBool:
		_, ok := value.(bool)
		return ok

	case schema.TypeInt:
		return isInt32(value)

	case schema.TypeDecimal:
		return isNumber(value)

	case schema.TypeDateTime:
		str, ok := value.(string)
		if !ok {
			return false
		}
		return parsesAsDateTime(str)

	default:
		return false
	}
}

// isInt32 reports whether the value is a JSON number exactly representable
// as a 32-bit integer. Numeric strings and non-integral numbers are not.
// Integral numbers written with a fraction or exponent part ("12.0", "1e3")
// qualify regardless of representation.
func isInt32(value any) bool {
	switch v := value.(type) {
	case float64:
		return isIntegral(v)
	case json.Number:
		if _, err := strconv.ParseInt(v.String(), 10, 32); err == nil {
			return true
		}
		f, err := v.Float64()
		return err == nil && isIntegral(f)
	default:
		return false
	}
}

// isIntegral reports whether the float carries no fraction part and fits
// in int32 range
func isIntegral(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32
}

// isNumber reports whether the value is any JSON number
func isNumber(value any) bool {
	switch value.(type) {
	case float64, json.Number:
		return true
	default:
		return false
	}
}

// parsesAsDateTime reports whether the string parses under one of the
// accepted ISO-8601 layouts
func parsesAsDateTime(s string) bool {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
