// Package ai produces free-text insights from a prompt and a system instruction.
package ai

import "context"

// Generator returns generated text for prompt under the system instruction.
// system may be empty.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}
