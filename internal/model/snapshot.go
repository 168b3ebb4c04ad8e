package model

// Snapshot is the state read from or written to the backing file in one go.
// LastID is the highest ID ever handed out, which may exceed every ID still
// present once tasks have been deleted.
type Snapshot struct {
	Tasks  []Task
	LastID int
}

// NextID is the ID the next added task gets. It never reuses a deleted ID.
func (s *Snapshot) NextID() int {
	next := NextID(s.Tasks)
	if seq := successor(s.LastID); seq > next {
		next = seq
	}
	return next
}

// Clone copies the task slice so mutations don't leak into s.
func (s *Snapshot) Clone() *Snapshot {
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	return &Snapshot{Tasks: tasks, LastID: s.LastID}
}
