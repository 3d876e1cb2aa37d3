// Package shell is the boundary between the user interface and the
// completion client: it guards empty prompts and turns errors into text.
package shell

import "context"

// ErrorPrefix starts every output line produced by a failed completion.
const ErrorPrefix = "Error: "

// Completer turns a prompt into a completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Outcome is the result of one submission.
type Outcome struct {
	Output string
	// Sent is false when the prompt was empty and nothing was requested.
	Sent bool
	// Failed marks Output as an error line rather than a response body.
	Failed bool
}

// Send sends prompt to c. An empty prompt is not sent. Errors are rendered
// into Output with ErrorPrefix, never returned.
func Send(ctx context.Context, c Completer, prompt string) Outcome {
	if prompt == "" {
		return Outcome{}
	}
	resp, err := c.Complete(ctx, prompt)
	if err != nil {
		return Outcome{Output: ErrorPrefix + err.Error(), Sent: true, Failed: true}
	}
	return Outcome{Output: resp, Sent: true}
}

// Submit is Send reduced to the text to display and whether it was sent.
func Submit(ctx context.Context, c Completer, prompt string) (output string, sent bool) {
	o := Send(ctx, c, prompt)
	return o.Output, o.Sent
}
