package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	values  map[string]string
	saves   []map[string]string
	loadErr error
	saveErr error
}

func (m *memPersister) LoadAll(ctx context.Context) (map[string]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.values, nil
}

func (m *memPersister) Save(ctx context.Context, values map[string]string) error {
	m.saves = append(m.saves, values)
	return m.saveErr
}

func TestState_GetUpdate(t *testing.T) {
	s := New()

	_, ok := s.Get("state")
	assert.False(t, ok)

	s.Update(map[string]string{"state": "alerting"})
	v, ok := s.Get("state")
	require.True(t, ok)
	assert.Equal(t, "alerting", v)

	s.Update(map[string]string{"state": ""})
	_, ok = s.Get("state")
	assert.False(t, ok)
}

func TestState_Persisted(t *testing.T) {
	p := &memPersister{values: map[string]string{"state": "paused"}}
	s := NewPersisted(context.Background(), p)

	v, ok := s.Get("state")
	require.True(t, ok)
	assert.Equal(t, "paused", v)

	s.Update(map[string]string{"state": "ok"})
	require.Len(t, p.saves, 1)
	assert.Equal(t, map[string]string{"state": "ok"}, p.saves[0])
}

func TestState_PersisterFailuresAreNotFatal(t *testing.T) {
	p := &memPersister{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}
	s := NewPersisted(context.Background(), p)

	assert.Empty(t, s.Snapshot())

	s.Update(map[string]string{"state": "ok"})
	v, _ := s.Get("state")
	assert.Equal(t, "ok", v)
}
