package aiautilities

import (
	"context"
	"sync"
	"time"

	"github.com/surgelove/aia-utilities/watch"
)

// Follow implements the Store interface for prefix follow streams.
func (s *store) Follow(
	ctx context.Context,
	prefix string,
	opts ...watch.Option,
) (<-chan watch.Event, func(), error) {
	if prefix == "" {
		return nil, nil, NewInvalidArgumentError("prefix", "must not be empty")
	}

	resolved := watch.NewOptions(opts...)

	events := make(chan watch.Event)
	isStopped := make(chan struct{})

	var stopOnce sync.Once
	stop := func() { stopOnce.Do(func() { close(isStopped) }) }

	go func() {
		defer close(events)

		// Keys already emitted. A key that failed to decode is marked
		// too and never retried, matching overwrite-free append usage.
		seen := make(map[string]struct{})

		ticker := time.NewTicker(resolved.PollInterval)
		defer ticker.Stop()

		for {
			if !s.followPass(ctx, prefix, seen, events, isStopped) {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-isStopped:
				return
			case <-ticker.C:
			}
		}
	}()

	return events, stop, nil
}

// followPass performs one rescan of the prefix and emits records for
// keys not seen before. A transport failure aborts the pass; the next
// tick retries the scan. Returns false when the stream should stop.
func (s *store) followPass(
	ctx context.Context,
	prefix string,
	seen map[string]struct{},
	events chan<- watch.Event,
	isStopped <-chan struct{},
) bool {
	for pair, err := range s.driver.Scan(ctx, []byte(prefix)) {
		if err != nil {
			return ctx.Err() == nil
		}

		key := string(pair.Key)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		rec, ok := s.decode(pair.Value)
		if !ok {
			continue
		}

		select {
		case events <- watch.Event{Key: []byte(key), Record: rec}:
		case <-ctx.Done():
			return false
		case <-isStopped:
			return false
		}
	}

	return true
}
