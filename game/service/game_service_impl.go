package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/openmaze/shiftingmaze/game/engine"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance.
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// touch bumps the session's last-accessed timestamp. A stale timestamp only
// affects idle eviction, so a failure is logged rather than surfaced.
func (s *gameServiceImpl) touch(sessionID string) {
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		log.WithError(err).WithField("session", sessionID).Warn("failed to update last-accessed time")
	}
}

// getConfigID returns the config_id for a given config name, used for
// consistent API responses.
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.Snapshot(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.touch(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.Snapshot(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.Snapshot(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// ApplyCommand feeds one command into a session's turn controller.
func (s *gameServiceImpl) ApplyCommand(ctx context.Context, sessionID string, cmd engine.Command) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	before := sess.Engine.Snapshot()
	dirty := sess.Engine.Apply(cmd)
	after := sess.Engine.Snapshot()

	result := &CommandResult{
		Dirty:        dirty,
		GameState:    after,
		ActivePlayer: after.TurnOrder[0],
		Phase:        after.Phase,
		GameOver:     after.GameOver,
		Winner:       after.Winner,
	}
	if dirty {
		result.Events = extractEvents(before, after, cmd)

		// Only dirty commands warrant persisting the snapshot.
		if err := s.sessions.Save(sessionID); err != nil {
			log.WithError(err).WithField("session", sessionID).Warn("failed to persist session after command")
		}
	}

	return result, nil
}

// Reset regenerates a session's game from its configuration.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	if _, err := sess.Engine.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}
	if err := s.sessions.Save(sessionID); err != nil {
		log.WithError(err).WithField("session", sessionID).Warn("failed to persist session after reset")
	}

	return sess.Engine.Snapshot(), nil
}

// SetDelegate registers a child identity acting for a player.
func (s *gameServiceImpl) SetDelegate(ctx context.Context, sessionID string, child, parent engine.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	if child == "" || parent == "" {
		return fmt.Errorf("delegate identities must be non-empty")
	}
	if sess.Engine.GetState().Board.Token(parent) == nil {
		return fmt.Errorf("unknown player %q", string(parent))
	}

	sess.Engine.RegisterDelegate(child, parent)
	if err := s.sessions.Save(sessionID); err != nil {
		log.WithError(err).WithField("session", sessionID).Warn("failed to persist session after delegate change")
	}
	return nil
}

// GetGameState retrieves a snapshot of the current game state.
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	return sess.Engine.Snapshot(), nil
}

// SetGameState replaces a session's state wholesale and returns the state
// now in effect.
func (s *gameServiceImpl) SetGameState(ctx context.Context, sessionID string, state *engine.GameState) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	// Clone so the caller's snapshot never aliases the live engine state.
	if err := sess.Engine.SetState(state.Clone()); err != nil {
		return nil, fmt.Errorf("failed to replace game state: %w", err)
	}
	if err := s.sessions.Save(sessionID); err != nil {
		log.WithError(err).WithField("session", sessionID).Warn("failed to persist session after state replace")
	}

	return sess.Engine.Snapshot(), nil
}

// ListConfigs returns available game configurations.
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration.
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk.
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractEvents derives game events by comparing the snapshots taken before
// and after a dirty command.
func extractEvents(before, after *engine.GameState, cmd engine.Command) []GameEvent {
	now := time.Now()
	actor := before.TurnOrder[0]
	events := []GameEvent{}

	switch {
	case before.Phase == engine.PhaseInsert && after.Phase == engine.PhaseMove:
		events = append(events, GameEvent{
			Type:      "tile_inserted",
			Message:   "Loose tile inserted, maze shifted",
			Timestamp: now,
			Player:    actor,
		})
	case before.Phase == engine.PhaseInsert && cmd.Kind == engine.CommandRotate:
		events = append(events, GameEvent{
			Type:      "tile_rotated",
			Message:   fmt.Sprintf("Loose tile rotated to %s", after.Board.LooseTile.Orientation),
			Timestamp: now,
			Player:    actor,
		})
	case before.Phase == engine.PhaseInsert && cmd.Kind == engine.CommandMove:
		events = append(events, GameEvent{
			Type:      "guide_moved",
			Message:   fmt.Sprintf("Insertion guide at %s %d", after.Board.LoosePosition.Edge, after.Board.LoosePosition.Index),
			Timestamp: now,
			Player:    actor,
		})
	case before.Phase == engine.PhaseMove && cmd.Kind == engine.CommandConfirm:
		token := after.Board.Token(actor)
		events = append(events, GameEvent{
			Type:      "token_moved",
			Message:   fmt.Sprintf("%s moved to (%d,%d)", actor, token.Position.Row, token.Position.Col),
			Timestamp: now,
			Player:    actor,
		})
		if len(token.Targets) < len(before.Board.Token(actor).Targets) {
			events = append(events, GameEvent{
				Type:      "target_reached",
				Message:   fmt.Sprintf("%s reached a target, %d remaining", actor, len(token.Targets)),
				Timestamp: now,
				Player:    actor,
			})
		}
		if after.GameOver {
			events = append(events, GameEvent{
				Type:      "victory",
				Message:   fmt.Sprintf("%s cleared every target and wins", after.Winner),
				Timestamp: now,
				Player:    after.Winner,
			})
		} else {
			events = append(events, GameEvent{
				Type:      "turn_passed",
				Message:   fmt.Sprintf("Turn passes to %s", after.TurnOrder[0]),
				Timestamp: now,
				Player:    after.TurnOrder[0],
			})
		}
	}

	return events
}
