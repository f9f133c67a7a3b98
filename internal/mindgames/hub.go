package mindgames

import "sync"

// Hub keeps one Controller per signed-in user.
type Hub struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	opts        []Option
	metrics     *Metrics
	onComplete  func(userID string, s Session)
}

// NewHub creates a hub whose controllers are built with opts. metrics may be nil.
func NewHub(metrics *Metrics, opts ...Option) *Hub {
	return &Hub{
		controllers: make(map[string]*Controller),
		opts:        opts,
		metrics:     metrics,
	}
}

// OnComplete registers fn for sessions completed by any user. Set it before
// the hub starts handing out controllers.
func (h *Hub) OnComplete(fn func(userID string, s Session)) {
	h.mu.Lock()
	h.onComplete = fn
	h.mu.Unlock()
}

// Controller returns the user's controller, creating it on first use.
func (h *Hub) Controller(userID string) *Controller {
	h.mu.RLock()
	c, ok := h.controllers[userID]
	h.mu.RUnlock()
	if ok {
		return c
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.controllers[userID]; ok {
		return c
	}

	opts := append(append([]Option(nil), h.opts...), OnStart(h.metrics.sessionStarted))
	c = NewController(opts...)
	hook := h.onComplete
	c.OnComplete(func(s Session) {
		h.metrics.sessionCompleted(s.Game)
		if hook != nil {
			hook(userID, s)
		}
	})
	h.controllers[userID] = c
	return c
}

// Discard drops the user's controller and cancels any pending advance.
func (h *Hub) Discard(userID string) {
	h.mu.Lock()
	c, ok := h.controllers[userID]
	delete(h.controllers, userID)
	h.mu.Unlock()

	if ok {
		c.Reset()
	}
}

// Len reports how many users currently hold a controller.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.controllers)
}
