package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/pagevisits/core/logger"
)

// Counter counts page views within one session.
// It is not safe for concurrent use; each request works on its own copy.
type Counter struct {
	pageViews int
}

// NewCounter returns a counter at zero and logs its creation.
func NewCounter(ctx context.Context, log *slog.Logger) *Counter {
	if log == nil {
		log = logger.Discard()
	}
	log.InfoContext(ctx, "page visit counter created", logger.Component("tracker"), logger.Event("counter_created"))
	return &Counter{}
}

// Increment adds one page view.
func (c *Counter) Increment() {
	c.pageViews++
}

// Value returns the current number of page views.
func (c *Counter) Value() int {
	return c.pageViews
}

// Clone returns an independent copy. Nil clones to nil.
func (c *Counter) Clone() *Counter {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

type counterJSON struct {
	PageViews int `json:"page_views"`
}

// MarshalJSON encodes the counter as {"page_views":N}.
// Serialization is logged at debug level on the default logger.
func (c *Counter) MarshalJSON() ([]byte, error) {
	slog.Debug("page visit counter serialized", logger.Component("tracker"), logger.PageViews(c.pageViews))
	return json.Marshal(counterJSON{PageViews: c.pageViews})
}

// UnmarshalJSON decodes {"page_views":N}, rejecting negative values.
func (c *Counter) UnmarshalJSON(b []byte) error {
	var v counterJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.PageViews < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, v.PageViews)
	}
	c.pageViews = v.PageViews
	slog.Debug("page visit counter restored", logger.Component("tracker"), logger.PageViews(c.pageViews))
	return nil
}
