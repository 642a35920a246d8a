package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

const defaultPollInterval = 25 * time.Millisecond

// SetupError is a fatal failure of one of the polling startup calls.
// Once the loop is running, errors are non-fatal and go to the error
// handlers instead.
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("polling setup failed at %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Polling configures and runs the long-polling driver.
type Polling struct {
	eventLoop *EventLoop

	limit          int
	timeout        int
	allowedUpdates []types.AllowedUpdate
	pollInterval   time.Duration
	requestTimeout time.Duration
	errorHandler   ErrorHandler

	offset    int64
	hasOffset bool
}

// Polling starts polling configuration.
func (el *EventLoop) Polling() *Polling {
	p := &Polling{
		eventLoop:    el,
		pollInterval: defaultPollInterval,
	}
	p.errorHandler = func(err error) {
		el.logger.Error("polling error", "error", err)
	}
	return p
}

// Limit caps the number of updates per getUpdates call (1..100).
func (p *Polling) Limit(limit int) *Polling {
	p.limit = limit
	return p
}

// Timeout sets the server-side long-polling timeout in seconds.
func (p *Polling) Timeout(seconds int) *Polling {
	p.timeout = seconds
	return p
}

// AllowedUpdates restricts which update kinds the server delivers.
func (p *Polling) AllowedUpdates(kinds []types.AllowedUpdate) *Polling {
	p.allowedUpdates = kinds
	return p
}

// PollInterval sets the minimal interval between getUpdates calls.
func (p *Polling) PollInterval(interval time.Duration) *Polling {
	p.pollInterval = interval
	return p
}

// RequestTimeout bounds every network call the driver makes. Unset, it
// defaults to the long-polling timeout plus 60 seconds.
func (p *Polling) RequestTimeout(timeout time.Duration) *Polling {
	p.requestTimeout = timeout
	return p
}

// ErrorHandler replaces the default slog diagnostic for polling-cycle
// errors. Registered PollingError handlers take precedence.
func (p *Polling) ErrorHandler(h ErrorHandler) *Polling {
	p.errorHandler = h
	return p
}

// LastNUpdates makes the first getUpdates call ask only for the last n
// pending updates, using the Bot API's negative-offset convention.
func (p *Polling) LastNUpdates(n int) *Polling {
	p.offset = -int64(n)
	p.hasOffset = true
	return p
}

func (p *Polling) reportError(err error) {
	if len(p.eventLoop.pollingError) > 0 {
		for _, h := range p.eventLoop.pollingError {
			h(err)
		}
		return
	}
	p.errorHandler(err)
}

// Start runs the startup sequence and then polls until ctx is cancelled.
// It returns a SetupError if deleteWebhook or setMyCommands fails, and
// ctx.Err() on cancellation; the loop itself never terminates otherwise.
func (p *Polling) Start(ctx context.Context) error {
	el := p.eventLoop

	requestTimeout := p.requestTimeout
	if requestTimeout == 0 {
		requestTimeout = time.Duration(p.timeout)*time.Second + 60*time.Second
	}

	// A webhook left registered makes getUpdates fail, so it goes first.
	setupCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	err := el.bot.DeleteWebhook().Call(setupCtx)
	cancel()
	if err != nil {
		return &SetupError{Stage: "deleteWebhook", Err: err}
	}

	setupCtx, cancel = context.WithTimeout(ctx, requestTimeout)
	err = el.installCommands(setupCtx)
	cancel()
	if err != nil {
		return &SetupError{Stage: "setMyCommands", Err: err}
	}

	el.logger.Info("polling started",
		"limit", p.limit, "timeout", p.timeout, "interval", p.pollInterval)

	for {
		// The tick is armed before the request so the pacing sleep
		// overlaps with the call and the dispatch that follows it.
		tick := time.NewTimer(p.pollInterval)

		call := el.bot.GetUpdates()
		if p.hasOffset {
			call.Offset(p.offset)
		}
		if p.limit != 0 {
			call.Limit(p.limit)
		}
		if p.timeout != 0 {
			call.Timeout(p.timeout)
		}
		if p.allowedUpdates != nil {
			call.AllowedUpdates(p.allowedUpdates)
		}

		callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		updates, err := call.Call(callCtx)
		cancel()

		switch {
		case err == nil:
			if len(updates) > 0 {
				p.offset = updates[len(updates)-1].ID + 1
				p.hasOffset = true
			}
			for _, u := range updates {
				el.HandleUpdate(ctx, u)
			}
		default:
			// On a flood-wait the server tells us when to come back;
			// the failed batch is retried because the offset is untouched.
			var reqErr *bot.RequestError
			if errors.As(err, &reqErr) && reqErr.RetryAfter > 0 {
				tick.Stop()
				tick = time.NewTimer(reqErr.RetryAfter)
			}
			p.reportError(err)
		}

		select {
		case <-ctx.Done():
			tick.Stop()
			return ctx.Err()
		case <-tick.C:
		}
	}
}
