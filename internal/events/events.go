package events

type Screen string

const (
	ScreenChallenge = Screen("challenge")
	ScreenTraining  = Screen("training")
)

// NavigateEvent asks the host to switch to another screen.
type NavigateEvent struct {
	Screen Screen
}

type Bus struct {
	Navigations chan NavigateEvent
}

func NewBus() *Bus {
	return &Bus{
		Navigations: make(chan NavigateEvent, 10),
	}
}

// Publish sends ev without blocking. It reports false when the bus is full
// and the event was dropped.
func (b *Bus) Publish(ev NavigateEvent) bool {
	select {
	case b.Navigations <- ev:
		return true
	default:
		return false
	}
}
