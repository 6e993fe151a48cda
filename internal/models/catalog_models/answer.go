package catalog_models

import (
	"encoding/json"
	"strconv"
	"strings"

	"voyago/pkg/utils"
)

// TravelTimeDaysID is the question whose value is derived from a completed
// date range instead of typed in directly.
const TravelTimeDaysID = "travel_time_days"

type AnswerKind int

const (
	AnswerKindText AnswerKind = iota
	AnswerKindNumber
	AnswerKindMulti
	AnswerKindDateRange
)

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AnswerValue is a tagged union over the answer shapes a question can hold.
// The tag comes from the owning question's declared type, so an array can
// never end up stored for a text question.
type AnswerValue struct {
	Kind   AnswerKind
	Text   string
	Number float64
	Multi  []string
	Range  DateRange
}

func TextAnswer(v string) AnswerValue    { return AnswerValue{Kind: AnswerKindText, Text: v} }
func NumberAnswer(v float64) AnswerValue { return AnswerValue{Kind: AnswerKindNumber, Number: v} }
func MultiAnswer(v []string) AnswerValue { return AnswerValue{Kind: AnswerKindMulti, Multi: v} }
func DateRangeAnswer(r DateRange) AnswerValue {
	return AnswerValue{Kind: AnswerKindDateRange, Range: r}
}

// String renders the raw answer the way it appears in a prompt when no
// template or option lookup applies.
func (v AnswerValue) String() string {
	switch v.Kind {
	case AnswerKindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case AnswerKindMulti:
		return strings.Join(v.Multi, ",")
	case AnswerKindDateRange:
		switch {
		case v.Range.StartDate != "" && v.Range.EndDate != "":
			return v.Range.StartDate + " to " + v.Range.EndDate
		case v.Range.StartDate != "":
			return v.Range.StartDate
		default:
			return v.Range.EndDate
		}
	default:
		return v.Text
	}
}

// MarshalJSON writes the untagged wire shape the generation endpoint expects:
// string, number, string array, or {startDate, endDate}.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerKindNumber:
		return json.Marshal(v.Number)
	case AnswerKindMulti:
		if v.Multi == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Multi)
	case AnswerKindDateRange:
		return json.Marshal(v.Range)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON re-tags a raw wire value by its JSON shape. Saved snapshots
// round-trip through this when an itinerary is loaded.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var multi []string
		if err := json.Unmarshal(data, &multi); err != nil {
			return err
		}
		*v = MultiAnswer(multi)
	case strings.HasPrefix(trimmed, "{"):
		var r DateRange
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		*v = DateRangeAnswer(r)
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextAnswer(s)
	case trimmed == "null":
		*v = TextAnswer("")
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberAnswer(n)
	}
	return nil
}

// AnswerMap maps question ids to typed answers. Every mutation is
// copy-on-write: callers get a fresh map and existing snapshots stay stable
// for any render or progress computation already in flight.
type AnswerMap map[string]AnswerValue

func (m AnswerMap) clone() AnswerMap {
	next := make(AnswerMap, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}

func (m AnswerMap) SetText(id, value string) AnswerMap {
	next := m.clone()
	next[id] = TextAnswer(value)
	return next
}

func (m AnswerMap) SetNumber(id string, value float64) AnswerMap {
	next := m.clone()
	next[id] = NumberAnswer(value)
	return next
}

// ToggleMulti removes value when already selected, otherwise appends it.
// Appending past maxSelections is a no-op; removal is always allowed.
// maxSelections <= 0 means unbounded.
func (m AnswerMap) ToggleMulti(id, value string, maxSelections int) AnswerMap {
	var current []string
	if v, ok := m[id]; ok && v.Kind == AnswerKindMulti {
		current = v.Multi
	}

	idx := -1
	for i, sel := range current {
		if sel == value {
			idx = i
			break
		}
	}

	if idx < 0 && maxSelections > 0 && len(current) >= maxSelections {
		return m
	}

	selected := make([]string, 0, len(current)+1)
	for i, sel := range current {
		if i == idx {
			continue
		}
		selected = append(selected, sel)
	}
	if idx < 0 {
		selected = append(selected, value)
	}

	next := m.clone()
	next[id] = MultiAnswer(selected)
	return next
}

// SetDateRangeStart merges the start date into the range. A start on or after
// the current end clears the end so the user re-enters it; otherwise the
// derived day count is refreshed.
func (m AnswerMap) SetDateRangeStart(id, value string) AnswerMap {
	next := m.clone()
	r := next.dateRange(id)
	r.StartDate = value

	if r.EndDate != "" && utils.CompareISODates(r.EndDate, value) <= 0 {
		r.EndDate = ""
	}

	next[id] = DateRangeAnswer(r)
	next.deriveTravelDays(id)
	return next
}

func (m AnswerMap) SetDateRangeEnd(id, value string) AnswerMap {
	next := m.clone()
	r := next.dateRange(id)
	r.EndDate = value
	next[id] = DateRangeAnswer(r)
	next.deriveTravelDays(id)
	return next
}

func (m AnswerMap) dateRange(id string) DateRange {
	if v, ok := m[id]; ok && v.Kind == AnswerKindDateRange {
		return v.Range
	}
	return DateRange{}
}

// deriveTravelDays is the single cross-field effect in the store: once a
// range has start strictly before end, travel_time_days becomes the
// inclusive day count.
func (m AnswerMap) deriveTravelDays(id string) {
	r := m.dateRange(id)
	if r.StartDate == "" || r.EndDate == "" {
		return
	}
	days, err := utils.InclusiveDayCount(r.StartDate, r.EndDate)
	if err != nil || days <= 0 {
		return
	}
	m[TravelTimeDaysID] = NumberAnswer(float64(days))
}

// IsAnswered reports whether the id counts as answered: a non-empty
// selection, a non-blank string, a number, or a consistent complete date
// range. Missing keys, nil and empty strings all read as unanswered.
func (m AnswerMap) IsAnswered(id string) bool {
	v, ok := m[id]
	if !ok {
		return false
	}
	switch v.Kind {
	case AnswerKindMulti:
		return len(v.Multi) > 0
	case AnswerKindNumber:
		return true
	case AnswerKindDateRange:
		if strings.TrimSpace(v.Range.StartDate) == "" || strings.TrimSpace(v.Range.EndDate) == "" {
			return false
		}
		return utils.CompareISODates(v.Range.StartDate, v.Range.EndDate) < 0
	default:
		return strings.TrimSpace(v.Text) != ""
	}
}

// Reset returns the empty map; kept as a method so callers do not share one
// mutable zero value.
func (m AnswerMap) Reset() AnswerMap {
	return make(AnswerMap)
}
