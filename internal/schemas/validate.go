// Package schemas validates candidate model output against the prep sheet
// contract and decodes it into the typed document. Validation is strict:
// a payload either satisfies the whole contract or is rejected with the
// failing field paths. There is no best-effort coercion and no partial result.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/leemount96/hearing-prep/internal/types"
)

//go:embed prep_sheet.schema.json
var prepSheetSchema string

// structValidator enforces the struct-level rules (required, enums) that the
// JSON Schema pass already covers structurally; it catches anything that
// slips through decoding, e.g. a numeric field arriving as a quoted string
// elsewhere in the tree.
var structValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports why a payload was rejected, field by field.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("prep sheet validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidatePrepSheet validates a raw JSON payload against the prep sheet
// schema and returns the typed, normalized document. Every declared
// invariant holds on a returned sheet: required fields present, enums within
// their allowed sets, list fields non-nil.
func ValidatePrepSheet(payload string) (*types.PrepSheet, error) {
	schemaLoader := gojsonschema.NewStringLoader(prepSheetSchema)
	documentLoader := gojsonschema.NewStringLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Field: "(root)", Message: fmt.Sprintf("payload is not valid JSON: %v", err)},
		}}
	}

	if !result.Valid() {
		ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, ve
	}

	var sheet types.PrepSheet
	if err := json.Unmarshal([]byte(payload), &sheet); err != nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Field: "(root)", Message: fmt.Sprintf("payload does not decode: %v", err)},
		}}
	}

	if err := structValidator.Struct(&sheet); err != nil {
		return nil, toValidationError(err)
	}

	sheet.Normalize()
	return &sheet, nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	ve := &ValidationError{}
	if ok := asValidationErrors(err, &fieldErrs); !ok {
		ve.Errors = append(ve.Errors, FieldError{Field: "(root)", Message: err.Error()})
		return ve
	}
	for _, fe := range fieldErrs {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
		})
	}
	return ve
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	errs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = errs
	}
	return ok
}
