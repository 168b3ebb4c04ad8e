package model

// MaxID is the largest ID a task may carry: the biggest integer every JSON
// reader can hold exactly (2^53-1).
const MaxID = 1<<53 - 1

// NextID returns 1 for an empty list, otherwise the highest ID plus one.
// The result never exceeds MaxID+1, which callers must refuse to hand out.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return successor(maxID)
}

func successor(id int) int {
	if id >= MaxID {
		return MaxID + 1
	}
	return id + 1
}

// FindByID returns the index of the first task with id, or -1.
func FindByID(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Filter keeps pending tasks only, unless includeDone is set. Order is preserved.
func Filter(tasks []Task, includeDone bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if includeDone || !t.Done {
			out = append(out, t)
		}
	}
	return out
}

// Stats counts done and pending tasks.
func Stats(tasks []Task) (done, pending int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
