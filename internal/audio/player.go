package audio

import "sync"

// Player tracks the single utterance each user has playing. Starting a new
// one replaces the old.
type Player struct {
	mu      sync.Mutex
	playing map[string]string
}

func NewPlayer() *Player {
	return &Player{playing: make(map[string]string)}
}

// Play makes itemID the user's active item and returns the one it replaced,
// or "" if nothing was playing.
func (p *Player) Play(userID, itemID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.playing[userID]
	p.playing[userID] = itemID
	return prev
}

// Stop clears the user's active item and returns it.
func (p *Player) Stop(userID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.playing[userID]
	delete(p.playing, userID)
	return prev
}

// Playing returns the user's active item, or "".
func (p *Player) Playing(userID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing[userID]
}

// Forget stops playback for items that no longer exist.
func (p *Player) Forget(userID, itemID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing[userID] == itemID {
		delete(p.playing, userID)
	}
}
