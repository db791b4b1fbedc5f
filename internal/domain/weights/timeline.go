package weights

import "baby-tracker-go/internal/domain/calendar"

// Timeline annotates entries, already sorted by measurement date, with the
// baby's age in days and the change from the previous measurement.
func Timeline(records []EntryRecord) []EntryView {
	views := make([]EntryView, 0, len(records))
	for i, record := range records {
		view := EntryView{
			Entry:          record.Entry,
			RecordedByName: record.RecordedByName,
			AgeDays:        calendar.DaysBetween(record.BirthDate, record.MeasuredAt),
		}
		if i > 0 {
			delta := record.WeightGrams - records[i-1].WeightGrams
			view.DeltaGrams = &delta
		}
		views = append(views, view)
	}
	return views
}
