package scheduling

import "github.com/Freeeeeet/tutor_dashboard/internal/model"

type availabilityKey struct {
	subjectID int64
	date      model.Date
}

// IndexAvailability строит AvailabilityLookup по списку записей.
// При дублях побеждает последняя запись.
func IndexAvailability(records []model.AvailabilityRecord) AvailabilityLookup {
	index := make(map[availabilityKey]model.AvailabilityRecord, len(records))
	for _, record := range records {
		index[availabilityKey{subjectID: record.SubjectID, date: record.Date}] = record
	}

	return func(subjectID int64, date model.Date) (model.AvailabilityRecord, bool) {
		record, ok := index[availabilityKey{subjectID: subjectID, date: date}]
		return record, ok
	}
}

// PolicyIndex строит PolicyLookup по карте политик.
// Для отсутствующих пользователей возвращается RestrictionUnrestricted.
func PolicyIndex(policies map[int64]model.RestrictionPolicy) PolicyLookup {
	return func(subjectID int64) model.RestrictionPolicy {
		if policy, ok := policies[subjectID]; ok {
			return policy
		}
		return model.RestrictionUnrestricted
	}
}
