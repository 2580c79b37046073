package inmemory

import (
	"log/slog"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/watchparty/server/internal/repository/room"
)

type roomEntry struct {
	mu   sync.Mutex
	room *room.Room
}

// repo is the process-wide room registry. The map is guarded by its own
// lock; every mutation of a stored room runs under that room's mutex, so
// handler invocations touching the same room are serialized while rooms
// stay independent of each other.
type repo struct {
	rooms  map[string]*roomEntry
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		rooms:  make(map[string]*roomEntry),
		logger: logger,
	}
}

func (r *repo) Create(newRoom *room.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[newRoom.Id]; ok {
		return room.ErrAlreadyExists
	}

	r.rooms[newRoom.Id] = &roomEntry{room: newRoom}
	r.logger.Debug("room created", "room_id", newRoom.Id)

	return nil
}

// Get returns a deep-copied snapshot of the room.
func (r *repo) Get(roomId string) (room.Room, error) {
	entry, err := r.getEntry(roomId)
	if err != nil {
		return room.Room{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.room.Clone(), nil
}

// Update runs fn on the live room under that room's mutex, making the whole
// read-modify-write of one handler invocation atomic with respect to other
// connections.
func (r *repo) Update(roomId string, fn func(*room.Room) error) error {
	entry, err := r.getEntry(roomId)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return fn(entry.room)
}

func (r *repo) Delete(roomId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, roomId)
	r.logger.Debug("room deleted", "room_id", roomId)
}

func (r *repo) RoomIds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.rooms)
}

func (r *repo) getEntry(roomId string) (*roomEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.rooms[roomId]
	if !ok {
		return nil, room.ErrNotFound
	}

	return entry, nil
}
