package usecase

import (
	"sync"

	"github.com/fadilmartias/neuraview/internal/dto"
)

// TaskKey is the well-known key the chat view reads its seeded task from.
const TaskKey = "task"

// TaskStore holds per-user content-part payloads until the chat view takes them.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string][]dto.ContentPart
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string][]dto.ContentPart)}
}

func (s *TaskStore) Put(userID, key string, parts []dto.ContentPart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[userID+"/"+key] = parts
}

// Take returns the stored payload and removes it.
func (s *TaskStore) Take(userID, key string) ([]dto.ContentPart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts, ok := s.tasks[userID+"/"+key]
	delete(s.tasks, userID+"/"+key)
	return parts, ok
}
