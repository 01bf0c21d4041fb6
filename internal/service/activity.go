package service

import (
	"sync"

	"treasure_hunter_bot/internal/model"
)

// ActivityFeed fans newly recorded finds out to websocket subscribers. A slow
// subscriber loses events rather than blocking the recorder.
type ActivityFeed struct {
	mu   sync.Mutex
	subs map[chan model.ActivityItem]struct{}
}

func NewActivityFeed() *ActivityFeed {
	return &ActivityFeed{
		subs: make(map[chan model.ActivityItem]struct{}),
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away; it closes the channel.
func (f *ActivityFeed) Subscribe() (<-chan model.ActivityItem, func()) {
	ch := make(chan model.ActivityItem, 16)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}

	return ch, cancel
}

func (f *ActivityFeed) Publish(item model.ActivityItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.subs {
		select {
		case ch <- item:
		default:
		}
	}
}
