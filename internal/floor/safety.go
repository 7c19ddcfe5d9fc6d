package floor

import (
	"log/slog"
	"sync"

	"github.com/warefloor/pirs/internal/ident"
)

// SafetyGate holds the set of lot numbers that must never ship
// (recalled or expired goods). Membership checks are O(1) regardless of
// blocklist size.
//
// The blocklist is append-only during normal operation; unblocking is an
// administrative action outside this engine.
type SafetyGate struct {
	mu   sync.RWMutex
	lots map[string]struct{}
}

// NewSafetyGate creates an empty gate.
func NewSafetyGate() *SafetyGate {
	return &SafetyGate{lots: make(map[string]struct{})}
}

// Block adds a lot number to the blocklist. Idempotent: blocking the same
// lot twice has no additional effect.
func (g *SafetyGate) Block(lotID string) {
	lotID = ident.Canonical(lotID)
	if lotID == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.lots[lotID]; exists {
		return
	}
	g.lots[lotID] = struct{}{}
	slog.Info("lot blocked", "lot_id", lotID)
}

// IsSafe reports whether a lot may ship. An empty lot id is safe: orders
// without lot tracking are not subject to safety holds.
func (g *SafetyGate) IsSafe(lotID string) bool {
	lotID = ident.Canonical(lotID)
	if lotID == "" {
		return true
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	_, blocked := g.lots[lotID]
	return !blocked
}

// Size returns the number of blocked lots.
func (g *SafetyGate) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.lots)
}
