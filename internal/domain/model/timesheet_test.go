package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
)

func TestTimesheetDays(t *testing.T) {
	t.Run("prefers PDF days", func(t *testing.T) {
		ts := model.Timesheet{PDFDays: dec("20"), EmailDays: dec("19")}
		assert.True(t, dec("20").Equal(ts.Days()))
	})

	t.Run("falls back to email days", func(t *testing.T) {
		ts := model.Timesheet{EmailDays: dec("18.5")}
		assert.True(t, dec("18.5").Equal(ts.Days()))
	})
}

func TestTimesheetDaysMatch(t *testing.T) {
	t.Run("both present and equal", func(t *testing.T) {
		match, comparable := model.Timesheet{PDFDays: dec("20"), EmailDays: dec("20")}.DaysMatch()
		assert.True(t, comparable)
		assert.True(t, match)
	})

	t.Run("both present and different", func(t *testing.T) {
		match, comparable := model.Timesheet{PDFDays: dec("20"), EmailDays: dec("21")}.DaysMatch()
		assert.True(t, comparable)
		assert.False(t, match)
	})

	t.Run("missing figure is not comparable", func(t *testing.T) {
		_, comparable := model.Timesheet{PDFDays: dec("20")}.DaysMatch()
		assert.False(t, comparable)
	})
}

func TestTimesheetStatusCountByState(t *testing.T) {
	status := model.TimesheetStatus{
		Consultants: []model.ConsultantFilingState{
			{Status: model.TimesheetReceived},
			{Status: model.TimesheetReceived},
			{Status: model.TimesheetWaiting},
			{Status: model.TimesheetOverdue},
		},
	}

	assert.Equal(t, 2, status.CountByState(model.TimesheetReceived))
	assert.Equal(t, 1, status.CountByState(model.TimesheetWaiting))
	assert.Equal(t, 1, status.CountByState(model.TimesheetOverdue))
}

func TestFindTimesheetMatchesEmailAndMonth(t *testing.T) {
	timesheets := []model.Timesheet{
		{ID: 1, SenderEmail: "ana@acme.example", Month: "June"},
		{ID: 2, SenderEmail: "boris@acme.example", Month: "june"},
	}

	row := model.ConsultantFilingState{Email: "boris@acme.example", CheckingMonth: "June"}
	ts := row.FindTimesheet(timesheets)
	require.NotNil(t, ts)
	assert.Equal(t, int64(2), ts.ID, "month comparison is case-insensitive")

	missing := model.ConsultantFilingState{Email: "vlado@acme.example", CheckingMonth: "June"}
	assert.Nil(t, missing.FindTimesheet(timesheets))
}
