package http

import (
	"context"
	"sync"
)

type confirmKey struct{}

// confirmation carries the user's answer for one request and the prompt the
// controller asked, if any.
type confirmation struct {
	mu       sync.Mutex
	accepted bool
	prompt   string
}

// withConfirmation attaches the answer submitted with the request
func withConfirmation(ctx context.Context, accepted bool) (context.Context, *confirmation) {
	c := &confirmation{accepted: accepted}
	return context.WithValue(ctx, confirmKey{}, c), c
}

// Prompt returns the question asked during the request, or "" if none was
func (c *confirmation) Prompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompt
}

// FormConfirmer answers confirmations from the submitted form. A request
// without confirmed=yes is declined and the prompt is recorded so the
// handler can ask the user and re-post.
type FormConfirmer struct{}

// Confirm implements port.Confirmer
func (FormConfirmer) Confirm(ctx context.Context, message string) bool {
	c, ok := ctx.Value(confirmKey{}).(*confirmation)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompt = message
	return c.accepted
}
