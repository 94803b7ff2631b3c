// Package notifier holds the reminder delivery channels.
package notifier

import (
	"context"

	"github.com/jwalitptl/caresync-api/internal/model"
)

// Notifier delivers one message on one channel. Implementations report
// failure through the returned error and never retry.
type Notifier interface {
	Channel() model.Channel
	Notify(ctx context.Context, title, message string) error
}

// Set indexes notifiers by channel.
type Set map[model.Channel]Notifier

func NewSet(notifiers ...Notifier) Set {
	set := make(Set, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			set[n.Channel()] = n
		}
	}
	return set
}
