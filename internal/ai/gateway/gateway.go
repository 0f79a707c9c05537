package gateway

import (
	"context"
)

// Gateway sends a rendered prompt to an external text-generation model
// and returns its raw reply. Implementations own their own timeout and
// transport concerns; callers treat the output as untrusted free text.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
