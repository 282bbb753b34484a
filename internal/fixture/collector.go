// Package fixture holds a small component whose failures are raised both
// directly and through tasks, for exercising the verifier end to end.
package fixture

import (
	"Inskape/expectfail/core/exception"
	"Inskape/expectfail/core/task"
	"context"
	"time"
)

const acceptDelay = 10 * time.Millisecond

type Collector struct {
	items []string
}

// Accept stores items. A nil slice is rejected.
func (c *Collector) Accept(items []string) (bool, error) {
	if items == nil {
		return false, &exception.ArgumentNull{Name: "items"}
	}
	c.items = append(c.items, items...)
	return true, nil
}

// AcceptAsync validates items immediately and stores them after a short delay
// on a task.
func (c *Collector) AcceptAsync(ctx context.Context, items []string) *task.Task[bool] {
	return task.Run(ctx, func(ctx context.Context) (bool, error) {
		if items == nil {
			return false, &exception.ArgumentNull{Name: "items"}
		}
		if err := task.Delay(ctx, acceptDelay); err != nil {
			return false, err
		}
		return c.Accept(items)
	})
}

func (c *Collector) Len() int {
	return len(c.items)
}
