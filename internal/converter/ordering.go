package converter

import (
	"sort"

	"github.com/alanjonesit/FitNotes2Hevy/internal/mappings"
	"github.com/alanjonesit/FitNotes2Hevy/internal/types"
)

// ordered is an input row with its grouping keys resolved.
type ordered struct {
	record types.InputRecord

	// index is the row's position in the input.
	index int

	// firstAppearance is the row's position within its (Date, Exercise)
	// group, in input order.
	firstAppearance int

	// exerciseOrder is the input position of the first row of the
	// (Date, Exercise) group.
	exerciseOrder int

	// workout is the 1-based workout number of the row's Date.
	workout int

	// name is the resolved Hevy exercise name.
	name string

	// setOrder is the 1-based position within the (Date, name) group.
	setOrder int
}

type dateExercise struct {
	date     string
	exercise string
}

// orderRecords groups rows into workouts and returns them in output order:
// dates ascending, exercises in the order first logged that day, sets in
// input order.
func orderRecords(records []types.InputRecord, mapping mappings.Mapping) []ordered {
	rows := make([]ordered, len(records))
	groupSize := make(map[dateExercise]int)
	groupStart := make(map[dateExercise]int)

	// Steps 1 and 2: positions within and of each (Date, Exercise) group.
	for i, rec := range records {
		key := dateExercise{rec.Date, rec.Exercise}
		if _, seen := groupStart[key]; !seen {
			groupStart[key] = i
		}
		rows[i] = ordered{
			record:          rec,
			index:           i,
			firstAppearance: groupSize[key],
			exerciseOrder:   groupStart[key],
		}
		groupSize[key]++
	}

	// Step 3: dense workout numbers over the sorted distinct dates.
	workouts := workoutNumbers(records)

	// Step 5: resolved names.
	for i := range rows {
		rows[i].workout = workouts[rows[i].record.Date]
		rows[i].name = mapping.Resolve(rows[i].record.Exercise)
	}

	// Step 6: output order. The keys are unique per row.
	sort.SliceStable(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if ra.record.Date != rb.record.Date {
			return ra.record.Date < rb.record.Date
		}
		if ra.exerciseOrder != rb.exerciseOrder {
			return ra.exerciseOrder < rb.exerciseOrder
		}
		return ra.firstAppearance < rb.firstAppearance
	})

	// Step 7: set order per (Date, resolved name), so two source names
	// mapped to one Hevy exercise share a numbering.
	sets := make(map[dateExercise]int)
	for i := range rows {
		key := dateExercise{rows[i].record.Date, rows[i].name}
		sets[key]++
		rows[i].setOrder = sets[key]
	}

	return rows
}

// workoutNumbers assigns 1..N to the distinct dates in ascending order.
// ISO dates sort lexically in chronological order.
func workoutNumbers(records []types.InputRecord) map[string]int {
	numbers := make(map[string]int)
	var dates []string
	for _, rec := range records {
		if _, ok := numbers[rec.Date]; !ok {
			numbers[rec.Date] = 0
			dates = append(dates, rec.Date)
		}
	}
	sort.Strings(dates)
	for i, d := range dates {
		numbers[d] = i + 1
	}
	return numbers
}
