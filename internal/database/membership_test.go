package database

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUserToRoomIdempotent(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	room := seedRoom(t, d, "general", user.ID)

	joined, err := d.AddUserToRoom("alice", "general")
	require.NoError(t, err)
	assert.True(t, joined)

	joined, err = d.AddUserToRoom("alice", "general")
	require.NoError(t, err)
	assert.False(t, joined)

	assert.EqualValues(t, 1, countMembers(t, d, user.ID, room.ID))

	member := getMember(t, d, user.ID, room.ID)
	assert.True(t, member.IsActive)
}

func TestAddUserToRoomConcurrent(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	room := seedRoom(t, d, "general", user.ID)

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan bool, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			joined, err := d.AddUserToRoom("alice", "general")
			if err != nil {
				errs <- err
				return
			}
			results <- joined
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	joinedCount := 0
	for joined := range results {
		if joined {
			joinedCount++
		}
	}

	// Ровно один вызов создаёт связь, остальные видят "уже участник"
	assert.Equal(t, 1, joinedCount)
	assert.EqualValues(t, 1, countMembers(t, d, user.ID, room.ID))
}

func TestAddUserToRoomMissing(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	seedRoom(t, d, "general", user.ID)

	_, err := d.AddUserToRoom("nobody", "general")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = d.AddUserToRoom("alice", "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetUserRoomActivity(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	room := seedRoom(t, d, "general", user.ID)

	// Связь не создаётся неявно
	err := d.SetUserRoomActivity("alice", "general", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = d.AddUserToRoom("alice", "general")
	require.NoError(t, err)

	require.NoError(t, d.SetUserRoomActivity("alice", "general", false))
	member := getMember(t, d, user.ID, room.ID)
	assert.False(t, member.IsActive)

	require.NoError(t, d.SetUserRoomActivity("alice", "general", true))
	member = getMember(t, d, user.ID, room.ID)
	assert.True(t, member.IsActive)

	err = d.SetUserRoomActivity("alice", "nowhere", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsActiveMember(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	room := seedRoom(t, d, "general", user.ID)

	active, err := d.IsActiveMember(user.ID, room.ID)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = d.AddUserToRoom("alice", "general")
	require.NoError(t, err)

	active, err = d.IsActiveMember(user.ID, room.ID)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, d.SetUserRoomActivity("alice", "general", false))

	active, err = d.IsActiveMember(user.ID, room.ID)
	require.NoError(t, err)
	assert.False(t, active)
}
