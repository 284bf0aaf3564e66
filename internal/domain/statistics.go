package domain

// TaskStatistics is derived from the current table state on every request.
type TaskStatistics struct {
	TotalTasks      int
	CompletedTasks  int
	PendingTasks    int
	OverdueTasks    int
	TasksByPriority map[Priority]int
}

// NewTaskStatistics assembles the aggregate figures. Pending is always
// total minus completed; priorities with no tasks are left out.
func NewTaskStatistics(total, completed, overdue int, byPriority map[Priority]int) *TaskStatistics {
	counts := make(map[Priority]int, len(byPriority))
	for p, n := range byPriority {
		if n > 0 {
			counts[p] = n
		}
	}
	return &TaskStatistics{
		TotalTasks:      total,
		CompletedTasks:  completed,
		PendingTasks:    total - completed,
		OverdueTasks:    overdue,
		TasksByPriority: counts,
	}
}

// ByPriorityName keys the per-priority counts by priority name.
func (s *TaskStatistics) ByPriorityName() map[string]int {
	named := make(map[string]int, len(s.TasksByPriority))
	for p, n := range s.TasksByPriority {
		named[p.String()] = n
	}
	return named
}
