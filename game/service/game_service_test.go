package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmaze/shiftingmaze/game/engine"
	"github.com/openmaze/shiftingmaze/game/service"
)

// MockSessionManager implements service.SessionManager for testing.
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    map[string]int
	touchErr error
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		saves:    make(map[string]int),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	sess := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if m.touchErr != nil {
		return m.touchErr
	}
	if sess, exists := m.sessions[id]; exists {
		sess.LastAccessedAt = time.Now()
	}
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	m.saves[id]++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing.
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	cfg := testGameConfig()
	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{"duel": cfg},
	}
}

func testGameConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:             "Test Duel",
		Description:      "Two player test board",
		Width:            7,
		Height:           7,
		Players:          []engine.PlayerID{"alice", "bob"},
		TargetsPerPlayer: 2,
		Seed:             42,
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	cfg, exists := m.configs[name]
	if !exists {
		return nil, fmt.Errorf("configuration not found: %s", name)
	}
	return cfg, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for id, cfg := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        cfg.Name,
			Description: cfg.Description,
			Width:       cfg.Width,
			Height:      cfg.Height,
			Players:     len(cfg.Players),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return testGameConfig()
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager) {
	t.Helper()
	sessions := NewMockSessionManager()
	return service.NewGameService(sessions, NewMockConfigManager()), sessions
}

func TestCreateSessionDefaultConfig(t *testing.T) {
	svc, _ := newTestService(t)

	info, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, info.ID)
	require.NotNil(t, info.GameState)
	assert.Equal(t, engine.PhaseInsert, info.GameState.Phase)
	assert.Equal(t, []engine.PlayerID{"alice", "bob"}, info.GameState.TurnOrder)
}

func TestCreateSessionNamedConfig(t *testing.T) {
	svc, _ := newTestService(t)

	info, err := svc.CreateSession(context.Background(), "duel")
	require.NoError(t, err)
	assert.Equal(t, "duel", info.ConfigName)
	assert.Equal(t, 7, info.GameConfig.Width)
}

func TestCreateSessionUnknownConfig(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateSession(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "duel")
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	fetched, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.ID, fetched.ID)

	list, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteSession(ctx, info.ID))

	_, err = svc.GetSession(ctx, info.ID)
	assert.Error(t, err)

	_, err = svc.GetGameState(ctx, "no-such-session")
	assert.Error(t, err)
}

func TestApplyCommandDirtyAndSaved(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	result, err := svc.ApplyCommand(ctx, info.ID, engine.Command{
		Actor: "alice", Kind: engine.CommandMove, Direction: engine.West,
	})
	require.NoError(t, err)

	assert.True(t, result.Dirty)
	assert.Equal(t, engine.PhaseInsert, result.Phase)
	assert.Equal(t, engine.PlayerID("alice"), result.ActivePlayer)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "guide_moved", result.Events[0].Type)
	assert.Equal(t, 1, sessions.saves[info.ID])
}

func TestApplyCommandIgnoredNotSaved(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	// bob is not the active player, so the command must be a clean no-op.
	result, err := svc.ApplyCommand(ctx, info.ID, engine.Command{
		Actor: "bob", Kind: engine.CommandMove, Direction: engine.West,
	})
	require.NoError(t, err)

	assert.False(t, result.Dirty)
	assert.Empty(t, result.Events)
	assert.Zero(t, sessions.saves[info.ID])
}

func TestApplyCommandFullTurnEvents(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	command := func(kind engine.CommandKind, dir engine.Direction) engine.Command {
		return engine.Command{Actor: "alice", Kind: kind, Direction: dir}
	}

	result, err := svc.ApplyCommand(ctx, info.ID, command(engine.CommandRotate, ""))
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "tile_rotated", result.Events[0].Type)

	_, err = svc.ApplyCommand(ctx, info.ID, command(engine.CommandMove, engine.West))
	require.NoError(t, err)

	result, err = svc.ApplyCommand(ctx, info.ID, command(engine.CommandConfirm, ""))
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseMove, result.Phase)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "tile_inserted", result.Events[0].Type)

	// Confirming on the token's own cell ends the turn without moving.
	result, err = svc.ApplyCommand(ctx, info.ID, command(engine.CommandConfirm, ""))
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseInsert, result.Phase)
	assert.Equal(t, engine.PlayerID("bob"), result.ActivePlayer)

	types := make([]string, 0, len(result.Events))
	for _, ev := range result.Events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, "token_moved")
	assert.Contains(t, types, "turn_passed")
}

func TestResetRegeneratesGame(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	_, err = svc.ApplyCommand(ctx, info.ID, engine.Command{
		Actor: "alice", Kind: engine.CommandMove, Direction: engine.North,
	})
	require.NoError(t, err)

	state, err := svc.Reset(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseInsert, state.Phase)
	assert.Nil(t, state.Board.LoosePosition)
	assert.Equal(t, []engine.PlayerID{"alice", "bob"}, state.TurnOrder)
}

func TestSetDelegate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	err = svc.SetDelegate(ctx, info.ID, "alice-kid", "nobody")
	assert.Error(t, err)

	require.NoError(t, svc.SetDelegate(ctx, info.ID, "alice-kid", "alice"))

	result, err := svc.ApplyCommand(ctx, info.ID, engine.Command{
		Actor: "alice-kid", Kind: engine.CommandMove, Direction: engine.South,
	})
	require.NoError(t, err)
	assert.True(t, result.Dirty)
}

func TestSetGameStateReplacesWholesale(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	snapshot, err := svc.GetGameState(ctx, info.ID)
	require.NoError(t, err)

	snapshot.TurnOrder = []engine.PlayerID{"bob", "alice"}
	snapshot.Phase = engine.PhaseMove

	applied, err := svc.SetGameState(ctx, info.ID, snapshot)
	require.NoError(t, err)
	assert.Equal(t, engine.PlayerID("bob"), applied.TurnOrder[0])
	assert.Equal(t, engine.PhaseMove, applied.Phase)

	// The replacing snapshot must not alias the live state.
	snapshot.TurnOrder[0] = "mallory"
	current, err := svc.GetGameState(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.PlayerID("bob"), current.TurnOrder[0])
}

func TestSetGameStateRejectsInconsistentState(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	// A wire snapshot declaring dimensions without a tile grid must be
	// rejected before it can replace the live state.
	bare := &engine.GameState{
		Board:     &engine.Board{Width: 7, Height: 7},
		Phase:     engine.PhaseInsert,
		TurnOrder: []engine.PlayerID{"alice"},
	}
	_, err = svc.SetGameState(ctx, info.ID, bare)
	require.Error(t, err)

	// The session still runs on its intact state.
	result, err := svc.ApplyCommand(ctx, info.ID, engine.Command{
		Actor: "alice", Kind: engine.CommandMove, Direction: engine.North,
	})
	require.NoError(t, err)
	assert.True(t, result.Dirty)
}

func TestLastAccessedFailureDoesNotFailRequests(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	sessions.touchErr = errors.New("timestamp store unavailable")

	_, err = svc.GetSession(ctx, info.ID)
	assert.NoError(t, err)

	result, err := svc.ApplyCommand(ctx, info.ID, engine.Command{
		Actor: "alice", Kind: engine.CommandMove, Direction: engine.West,
	})
	require.NoError(t, err)
	assert.True(t, result.Dirty)
}

func TestConfigPassthrough(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	configs, err := svc.ListConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "duel", configs[0].ConfigID)

	cfg, err := svc.LoadConfig(ctx, "duel")
	require.NoError(t, err)
	assert.Equal(t, "Test Duel", cfg.Name)

	custom := testGameConfig()
	custom.Name = "Quad"
	custom.Players = []engine.PlayerID{"a", "b", "c", "d"}
	require.NoError(t, svc.SaveConfig(ctx, "quad", custom))

	configs, err = svc.ListConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, configs, 2)
}
