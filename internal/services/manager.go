package services

import (
	"fmt"
	"sync"

	"wellness-go/internal/assistant"
	"wellness-go/internal/client"
	"wellness-go/internal/models"

	"go.uber.org/zap"
)

// Manager hands out one Engine per signed-in user and lets the scheduler
// walk them. Engines live for the life of the process; their session state
// is what Reset clears.
type Manager struct {
	mu      sync.RWMutex
	engines map[int]*Engine

	api    *client.Client
	script *assistant.Script
	log    *zap.Logger
}

// NewManager creates an empty manager.
func NewManager(api *client.Client, script *assistant.Script, log *zap.Logger) *Manager {
	return &Manager{
		engines: make(map[int]*Engine),
		api:     api,
		script:  script,
		log:     log,
	}
}

// Engine returns the engine for a user, creating it on first sight.
func (m *Manager) Engine(user models.User) (*Engine, error) {
	m.mu.RLock()
	e, ok := m.engines[user.ID]
	m.mu.RUnlock()
	if ok {
		return e, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.engines[user.ID]; ok {
		return e, nil
	}

	bot, err := assistant.New(m.script)
	if err != nil {
		return nil, fmt.Errorf("build assistant: %w", err)
	}
	e = NewEngine(m.api, user, bot, m.log.With(zap.Int("userID", user.ID)))
	m.engines[user.ID] = e
	return e, nil
}

// Each calls fn for every live engine.
func (m *Manager) Each(fn func(*Engine)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.engines {
		fn(e)
	}
}
