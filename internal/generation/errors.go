package generation

import "fmt"

// GenerationError is fatal to the request: the model call failed or produced
// nothing usable, so no artifact is created. There is no retry here; callers
// may re-issue the whole request, which is safe because existing artifacts
// short-circuit generation.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
