package task

const (
	MinTasksShown     = 1
	MaxTasksShown     = 10
	DefaultTasksShown = 5
)

// Settings are the display toggles applied to the visible list.
type Settings struct {
	FilterBySource bool
	ShowLeague     bool
	ShowQuest      bool
	ShowCustom     bool
	ShowRandom     bool
	MaxShown       int
}

func DefaultSettings() Settings {
	return Settings{
		ShowLeague: true,
		ShowQuest:  true,
		ShowCustom: true,
		ShowRandom: true,
		MaxShown:   DefaultTasksShown,
	}
}

// Filter applies the source toggles and caps the result at MaxShown (clamped to
// [MinTasksShown, MaxTasksShown]). Input order is preserved.
func Filter(tasks []Task, s Settings) []Task {
	limit := s.MaxShown
	if limit < MinTasksShown {
		limit = MinTasksShown
	}
	if limit > MaxTasksShown {
		limit = MaxTasksShown
	}

	out := make([]Task, 0, limit)
	for _, t := range tasks {
		if len(out) == limit {
			break
		}
		if s.FilterBySource && !s.allows(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s Settings) allows(t Task) bool {
	if !s.ShowLeague && t.Source.IsLeague() {
		return false
	}
	if !s.ShowQuest && t.Source == SourceQuest {
		return false
	}
	if !s.ShowCustom && t.Source == SourceCustom {
		return false
	}
	if !s.ShowRandom && IsGenerated(t) {
		return false
	}
	return true
}
