package state

// Clone produces an independent deep copy of a SystemState. The copy is
// structurally equal to the original and shares no mutable references with
// it, so mutation during simulation can never touch the baseline.
//
// The clone is type-aware rather than a serialize/deserialize round-trip:
// time.Time values and the distribution maps are copied exactly instead of
// being squeezed through JSON.
func Clone(s SystemState) SystemState {
	out := s

	out.Events = make([]Event, len(s.Events))
	copy(out.Events, s.Events)

	out.Tasks = make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.DueDate != nil {
			due := *t.DueDate
			t.DueDate = &due
		}
		out.Tasks[i] = t
	}

	out.Budgets = make([]TimeBudget, len(s.Budgets))
	copy(out.Budgets, s.Budgets)

	out.Distribution = cloneDistribution(s.Distribution)

	out.Conflicts = make([]Conflict, len(s.Conflicts))
	for i, c := range s.Conflicts {
		items := make([]string, len(c.Items))
		copy(items, c.Items)
		c.Items = items
		out.Conflicts[i] = c
	}

	out.Risks = make([]Risk, len(s.Risks))
	copy(out.Risks, s.Risks)

	return out
}

func cloneDistribution(d TimeDistribution) TimeDistribution {
	out := TimeDistribution{}
	if d.HoursByCategory != nil {
		out.HoursByCategory = make(map[Category]float64, len(d.HoursByCategory))
		for k, v := range d.HoursByCategory {
			out.HoursByCategory[k] = v
		}
	}
	if d.ShareByCategory != nil {
		out.ShareByCategory = make(map[Category]float64, len(d.ShareByCategory))
		for k, v := range d.ShareByCategory {
			out.ShareByCategory[k] = v
		}
	}
	return out
}
