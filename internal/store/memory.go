package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
)

// Credential is the persisted pair for one device
type Credential struct {
	Token    string
	UserJSON []byte
}

// DeviceStore persists credentials keyed by the device cookie value
type DeviceStore interface {
	Get(ctx context.Context, deviceID string) (*Credential, error)
	SetToken(ctx context.Context, deviceID, token string) error
	SetUser(ctx context.Context, deviceID string, userJSON []byte) error
	Clear(ctx context.Context, deviceID string) error
}

// MemoryDeviceStore is the default single-process DeviceStore
type MemoryDeviceStore struct {
	mu    sync.RWMutex
	creds map[string]*Credential
}

func NewMemoryDeviceStore() *MemoryDeviceStore {
	return &MemoryDeviceStore{creds: make(map[string]*Credential)}
}

func (m *MemoryDeviceStore) Get(ctx context.Context, deviceID string) (*Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.creds[deviceID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryDeviceStore) SetToken(ctx context.Context, deviceID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.creds[deviceID]
	if !ok {
		c = &Credential{}
		m.creds[deviceID] = c
	}
	c.Token = token
	return nil
}

func (m *MemoryDeviceStore) SetUser(ctx context.Context, deviceID string, userJSON []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.creds[deviceID]
	if !ok {
		c = &Credential{}
		m.creds[deviceID] = c
	}
	c.UserJSON = append([]byte(nil), userJSON...)
	return nil
}

func (m *MemoryDeviceStore) Clear(ctx context.Context, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.creds, deviceID)
	return nil
}

// DeviceMedium adapts a DeviceStore to the Medium interface for one device
type DeviceMedium struct {
	store    DeviceStore
	deviceID string
}

func NewDeviceMedium(s DeviceStore, deviceID string) *DeviceMedium {
	return &DeviceMedium{store: s, deviceID: deviceID}
}

func (d *DeviceMedium) Token(ctx context.Context) (string, bool) {
	c, err := d.store.Get(ctx, d.deviceID)
	if err != nil || c == nil || c.Token == "" {
		return "", false
	}
	return c.Token, true
}

func (d *DeviceMedium) SetToken(ctx context.Context, token string) error {
	return d.store.SetToken(ctx, d.deviceID, token)
}

func (d *DeviceMedium) User(ctx context.Context) (*models.UserProfile, bool) {
	c, err := d.store.Get(ctx, d.deviceID)
	if err != nil || c == nil || len(c.UserJSON) == 0 {
		return nil, false
	}
	var u models.UserProfile
	if err := json.Unmarshal(c.UserJSON, &u); err != nil {
		// malformed stored profile reads as absent
		return nil, false
	}
	return &u, true
}

func (d *DeviceMedium) SetUser(ctx context.Context, u *models.UserProfile) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return d.store.SetUser(ctx, d.deviceID, raw)
}

func (d *DeviceMedium) Clear(ctx context.Context) error {
	return d.store.Clear(ctx, d.deviceID)
}
