package service

import (
	"context"
	"time"

	"github.com/openmaze/shiftingmaze/game/engine"
)

// GameService defines all game-related operations exposed to transports.
type GameService interface {
	// Session management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game operations
	ApplyCommand(ctx context.Context, sessionID string, cmd engine.Command) (*CommandResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)
	SetDelegate(ctx context.Context, sessionID string, child, parent engine.PlayerID) error

	// Game state. SetGameState replaces the session's state wholesale,
	// supporting hosts that reconcile by "last full-state write wins".
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	SetGameState(ctx context.Context, sessionID string, state *engine.GameState) (*engine.GameState, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading.
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
