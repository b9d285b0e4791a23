package model

// Objective is a user-defined goal with an optional deadline and a
// list of key results. JSON field names match the snapshot schema
// used by earlier versions of the dashboard, so old payloads load
// unchanged.
type Objective struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	CreatedDate Date        `json:"createdDate"`
	Deadline    *Date       `json:"deadline"`
	KeyResults  []KeyResult `json:"keyResults"`

	// CompletedCount caches the number of completed key results.
	// It is recomputed on every key-result mutation and on load;
	// the stored value is never trusted.
	CompletedCount int `json:"completedCount"`
}

// KeyResult is a checkbox-style sub-task belonging to one objective.
// Its lifecycle is bound to the parent: it is removed only when the
// parent objective is deleted.
type KeyResult struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// CountCompleted returns the number of completed key results.
func (o Objective) CountCompleted() int {
	n := 0
	for _, kr := range o.KeyResults {
		if kr.Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the objective.
func (o Objective) Clone() Objective {
	c := o
	if o.Deadline != nil {
		d := *o.Deadline
		c.Deadline = &d
	}
	c.KeyResults = make([]KeyResult, len(o.KeyResults))
	copy(c.KeyResults, o.KeyResults)
	return c
}

// CloneObjectives returns a deep copy of a whole objective list.
func CloneObjectives(objectives []Objective) []Objective {
	out := make([]Objective, len(objectives))
	for i, o := range objectives {
		out[i] = o.Clone()
	}
	return out
}
