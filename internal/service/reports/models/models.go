package models

// DailyAppointment строка отчета "приёмы на дату"
type DailyAppointment struct {
	AppointmentID string `json:"appointmentId"`
	DoctorID      string `json:"doctorId"`
	DoctorName    string `json:"doctorName"`
	PatientID     string `json:"patientId"`
	PatientName   string `json:"patientName"`
	StartTime     string `json:"startTime"`
	Status        string `json:"status"`
}

// DailyReportResponse отчет по приёмам на дату
type DailyReportResponse struct {
	Date         string             `json:"date"`
	Total        int                `json:"total"`
	Appointments []DailyAppointment `json:"appointments"`
}

// DoctorLoad строка отчета "нагрузка по врачам"
type DoctorLoad struct {
	DoctorID   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
	Count      int    `json:"count"`
}

// DoctorLoadReportResponse отчет по нагрузке врачей за период
type DoctorLoadReportResponse struct {
	From    string       `json:"from"`
	To      string       `json:"to"`
	Doctors []DoctorLoad `json:"doctors"`
}

// SpecialtyLoad строка отчета "нагрузка по специальностям"
type SpecialtyLoad struct {
	Specialization string `json:"specialization"`
	Count          int    `json:"count"`
}

// SpecialtyReportResponse отчет по специальностям за период
type SpecialtyReportResponse struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Specialties []SpecialtyLoad `json:"specialties"`
}

// FrequentPatient строка отчета "частые пациенты"
type FrequentPatient struct {
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName"`
	Count       int    `json:"count"`
}

// FrequentPatientsResponse отчет по пациентам с частыми визитами
type FrequentPatientsResponse struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	MinCount int               `json:"minCount"`
	Patients []FrequentPatient `json:"patients"`
}
