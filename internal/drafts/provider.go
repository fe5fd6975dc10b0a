package drafts

import "context"

// Request is a provider-agnostic generation request. ImageData, when
// set, is attached inline alongside Text; IncludeAnswer extends the
// output schema with the conversational answer field used by feedback
// flows.
type Request struct {
	SystemInstruction string
	Text              string
	ImageData         []byte
	ImageMIME         string
	IncludeAnswer     bool
}

// Provider generates raw JSON draft text from a request. The returned
// string is unvalidated model output; callers must run it through
// parseResult before trusting it.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
