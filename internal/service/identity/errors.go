package identity

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден ни по одному идентификатору
	ErrDoctorNotFound = errors.New("identity: doctor not found")

	// ErrPatientNotFound возвращается, когда пациент не найден ни по одному идентификатору
	ErrPatientNotFound = errors.New("identity: patient not found")

	// ErrInternal возвращается при внутренних ошибках резолвера
	ErrInternal = errors.New("identity: internal error")
)
