package domain

// Patient represents a patient's master record.
// Для движка расписания пациент - только идентичность и контакты для уведомлений.
type Patient struct {
	ID        int64
	PatientID string // Business ID like "P1004"
	Name      string
	Email     string
	Phone     string
}

// BusinessID возвращает канонический идентификатор пациента
func (p *Patient) BusinessID() string {
	if p.PatientID != "" {
		return p.PatientID
	}
	return formatStorageID(p.ID)
}
