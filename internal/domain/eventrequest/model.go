package eventrequest

import (
	"errors"
	"strings"
	"time"

	"eventdesk/internal/domain/form"
)

// Input layouts used by the date and time pickers.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Field keys, matching the form input names.
const (
	FieldTitle     = "title"
	FieldDateStart = "dateStart"
	FieldTimeStart = "timeStart"
	FieldDateEnd   = "dateEnd"
	FieldTimeEnd   = "timeEnd"
)

// MsgEndBeforeStart is attached to dateEnd when the range is empty or inverted.
const MsgEndBeforeStart = "End date/time must be after start date/time"

// ErrInvalid is returned by Start and End when the date part cannot be parsed.
var ErrInvalid = errors.New("event request date/time is invalid")

// Request is a proposed event awaiting administrator review.
type Request struct {
	ID          string    `json:"id,omitempty" form:"-"`
	Title       string    `json:"title" form:"title" label:"Event title" validate:"notblank"`
	DateStart   string    `json:"dateStart" form:"dateStart" label:"Start date" validate:"notblank,datetime=2006-01-02"`
	TimeStart   string    `json:"timeStart" form:"timeStart" label:"Start time" validate:"notblank,datetime=15:04"`
	DateEnd     string    `json:"dateEnd" form:"dateEnd" label:"End date" validate:"notblank,datetime=2006-01-02"`
	TimeEnd     string    `json:"timeEnd" form:"timeEnd" label:"End time" validate:"notblank,datetime=15:04"`
	Description string    `json:"description" form:"description"`
	SubmittedAt time.Time `json:"submittedAt,omitzero" form:"-"`
}

// Validate returns field-keyed errors; an empty map means the request can be submitted.
// POST: when both dates parse, the combined end must be strictly after the combined start
func (r *Request) Validate() form.Errors {
	errs := form.Check(r)
	if errs.Has(FieldDateStart) || errs.Has(FieldDateEnd) {
		return errs
	}
	start, err := r.Start()
	if err != nil {
		return errs
	}
	end, err := r.End()
	if err != nil {
		return errs
	}
	if !end.After(start) {
		errs.Add(FieldDateEnd, MsgEndBeforeStart)
	}
	return errs
}

// Start combines DateStart and TimeStart. A blank time means midnight.
func (r *Request) Start() (time.Time, error) {
	return combine(r.DateStart, r.TimeStart)
}

// End combines DateEnd and TimeEnd. A blank time means midnight.
func (r *Request) End() (time.Time, error) {
	return combine(r.DateEnd, r.TimeEnd)
}

func combine(date, clock string) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, strings.TrimSpace(date)+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalid
	}
	return t, nil
}

// Reset clears every field, as after a successful submission.
func (r *Request) Reset() {
	*r = Request{}
}
