package book_appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHTTPRequest() *BookAppointmentRequest {
	return &BookAppointmentRequest{
		DoctorID:  "D2001",
		PatientID: "P1004",
		Date:      "2025-06-02",
		StartTime: "10:00",
	}
}

func TestToUseCaseRequest_Valid(t *testing.T) {
	req, err := validHTTPRequest().ToUseCaseRequest()

	require.NoError(t, err)
	assert.Equal(t, "D2001", req.DoctorRef)
	assert.Equal(t, "P1004", req.PatientRef)
	assert.Equal(t, "2025-06-02", req.Date.Format("2006-01-02"))
	assert.Equal(t, "10:00", req.StartTime.String())
	assert.Nil(t, req.Remarks)
}

func TestToUseCaseRequest_InvalidDate(t *testing.T) {
	// Оба поля непустые — ошибка классифицируется по тому, какой парсинг упал,
	// а не по наличию полей
	httpReq := validHTTPRequest()
	httpReq.Date = "02.06.2025"

	_, err := httpReq.ToUseCaseRequest()

	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidDate)
	assert.NotErrorIs(t, err, errInvalidTime)
}

func TestToUseCaseRequest_InvalidTime(t *testing.T) {
	httpReq := validHTTPRequest()
	httpReq.StartTime = "25:99"

	_, err := httpReq.ToUseCaseRequest()

	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidTime)
	assert.NotErrorIs(t, err, errInvalidDate)
}

func TestToUseCaseRequest_RemarksPassedThrough(t *testing.T) {
	remarks := "первый визит"
	httpReq := validHTTPRequest()
	httpReq.Remarks = &remarks

	req, err := httpReq.ToUseCaseRequest()

	require.NoError(t, err)
	require.NotNil(t, req.Remarks)
	assert.Equal(t, remarks, *req.Remarks)
}
