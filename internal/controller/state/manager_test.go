package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateAwaitReschedule)
	sm.SetData(1, DataBookingID, int64(42))
	assert.Equal(t, StateAwaitReschedule, sm.GetState(1))

	id, ok := sm.GetInt64(1, DataBookingID)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	sm.SetData(1, "text", "hello")
	_, ok = sm.GetInt64(1, "text")
	assert.False(t, ok, "wrong type")

	all := sm.GetAllData(1)
	all["extra"] = 1
	_, ok = sm.GetData(1, "extra")
	assert.False(t, ok, "GetAllData returns a copy")

	sm.SetState(1, StateNone)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok = sm.GetData(1, DataBookingID)
	assert.False(t, ok)
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm := NewManager()

	var wg sync.WaitGroup
	for i := int64(0); i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateAwaitFreeQuery)
			sm.SetData(id, DataBookingID, id)
			sm.GetState(id)
			sm.ClearState(id)
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 20; i++ {
		assert.Equal(t, StateNone, sm.GetState(i))
	}
}
