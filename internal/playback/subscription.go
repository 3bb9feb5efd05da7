package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged     <-chan StateChange
	PlaylistChanged  <-chan PlaylistChange
	CurrentChanged   <-chan CurrentChange
	Removed          <-chan RemoveChange
	OrderChanged     <-chan OrderChange
	Renamed          <-chan RenameResult
	ModeChanged      <-chan ModeChange
	SelectionChanged <-chan SelectionChange
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	// Internal write channels
	stateCh     chan StateChange
	playlistCh  chan PlaylistChange
	currentCh   chan CurrentChange
	removedCh   chan RemoveChange
	orderCh     chan OrderChange
	renamedCh   chan RenameResult
	modeCh      chan ModeChange
	selectionCh chan SelectionChange
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:     make(chan StateChange, eventBufferSize),
		playlistCh:  make(chan PlaylistChange, eventBufferSize),
		currentCh:   make(chan CurrentChange, eventBufferSize),
		removedCh:   make(chan RemoveChange, eventBufferSize),
		orderCh:     make(chan OrderChange, eventBufferSize),
		renamedCh:   make(chan RenameResult, eventBufferSize),
		modeCh:      make(chan ModeChange, eventBufferSize),
		selectionCh: make(chan SelectionChange, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.PlaylistChanged = s.playlistCh
	s.CurrentChanged = s.currentCh
	s.Removed = s.removedCh
	s.OrderChanged = s.orderCh
	s.Renamed = s.renamedCh
	s.ModeChanged = s.modeCh
	s.SelectionChanged = s.selectionCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e without blocking; events are dropped when the buffer is full.
func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)         { send(s.stateCh, e) }
func (s *Subscription) sendPlaylist(e PlaylistChange)   { send(s.playlistCh, e) }
func (s *Subscription) sendCurrent(e CurrentChange)     { send(s.currentCh, e) }
func (s *Subscription) sendRemoved(e RemoveChange)      { send(s.removedCh, e) }
func (s *Subscription) sendOrder(e OrderChange)         { send(s.orderCh, e) }
func (s *Subscription) sendRenamed(e RenameResult)      { send(s.renamedCh, e) }
func (s *Subscription) sendMode(e ModeChange)           { send(s.modeCh, e) }
func (s *Subscription) sendSelection(e SelectionChange) { send(s.selectionCh, e) }
func (s *Subscription) sendError(e ErrorEvent)          { send(s.errorCh, e) }
