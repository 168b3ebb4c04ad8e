package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 1, NextID([]Task{}))
	assert.Equal(t, 4, NextID([]Task{{ID: 1}, {ID: 3}, {ID: 2}}))
	assert.Equal(t, 10, NextID([]Task{{ID: 9}}))
}

func TestFindByID(t *testing.T) {
	tasks := []Task{{ID: 5, Title: "a"}, {ID: 2, Title: "b"}, {ID: 2, Title: "dup"}}
	assert.Equal(t, 0, FindByID(tasks, 5))
	assert.Equal(t, 1, FindByID(tasks, 2), "first match wins")
	assert.Equal(t, -1, FindByID(tasks, 7))
	assert.Equal(t, -1, FindByID(nil, 1))
}

func TestFilter(t *testing.T) {
	tasks := []Task{{ID: 1, Done: true}, {ID: 2}, {ID: 3, Done: true}, {ID: 4}}

	pending := Filter(tasks, false)
	assert.Equal(t, []Task{{ID: 2}, {ID: 4}}, pending)
	assert.Equal(t, tasks, Filter(tasks, true))
	assert.Empty(t, Filter(nil, true))
}

func TestStats(t *testing.T) {
	done, pending := Stats([]Task{{Done: true}, {}, {}})
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
}

func TestSnapshot_NextIDUsesLastID(t *testing.T) {
	s := &Snapshot{Tasks: []Task{{ID: 1}}, LastID: 3}
	assert.Equal(t, 4, s.NextID())

	s = &Snapshot{Tasks: []Task{{ID: 6}}, LastID: 2}
	assert.Equal(t, 7, s.NextID())

	assert.Equal(t, 1, (&Snapshot{}).NextID())
}

func TestNextID_SaturatesAtMaxID(t *testing.T) {
	assert.Equal(t, MaxID, NextID([]Task{{ID: MaxID - 1}}))
	assert.Equal(t, MaxID+1, NextID([]Task{{ID: MaxID}}))
	assert.Equal(t, MaxID+1, NextID([]Task{{ID: math.MaxInt}}))
	assert.Equal(t, MaxID+1, (&Snapshot{LastID: math.MaxInt}).NextID())
	assert.Positive(t, (&Snapshot{Tasks: []Task{{ID: math.MaxInt}}}).NextID())
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	s := &Snapshot{Tasks: []Task{{ID: 1, Title: "a"}}, LastID: 1}
	c := s.Clone()
	c.Tasks[0].Title = "changed"
	c.Tasks = append(c.Tasks, Task{ID: 2})

	assert.Equal(t, "a", s.Tasks[0].Title)
	assert.Len(t, s.Tasks, 1)
}

func TestNextIDExceedsEveryIDProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOf(rapid.IntRange(1, 1000)).Draw(t, "ids")
		tasks := make([]Task, len(ids))
		for i, id := range ids {
			tasks[i] = Task{ID: id}
		}
		next := NextID(tasks)
		for _, id := range ids {
			if next <= id {
				t.Fatalf("NextID %d not above existing id %d", next, id)
			}
		}
		if FindByID(tasks, next) != -1 {
			t.Fatalf("NextID %d already in use", next)
		}
	})
}
