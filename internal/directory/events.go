package directory

import (
	"sync"

	"github.com/julianstephens/mealtrack/internal/logger"
	"github.com/julianstephens/mealtrack/internal/models"
)

type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
	EventUpdated
	EventRefreshed
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventUpdated:
		return "updated"
	case EventRefreshed:
		return "refreshed"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event describes one change to the directory. Meal is empty for
// refresh and clear events.
type Event struct {
	Kind EventKind
	Meal models.Meal
}

// Subscribe registers a listener with the given channel buffer. The returned
// func unsubscribes and closes the channel. Delivery never blocks: when the
// buffer is full the event is dropped.
func (d *Directory) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan Event, buffer)

	d.subMu.Lock()
	id := d.nextID
	d.nextID++
	d.subs[id] = ch
	d.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.subMu.Lock()
			delete(d.subs, id)
			d.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (d *Directory) publish(ev Event) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	for id, ch := range d.subs {
		select {
		case ch <- ev:
		default:
			logger.Warn("Dropping directory event for slow subscriber", "subscriber", id, "event", ev.Kind)
		}
	}
}
