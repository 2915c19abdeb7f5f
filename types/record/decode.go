package record

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rotblauer/trajd/conceptual"
	"github.com/tidwall/gjson"
)

// Field names, in source column order.
const (
	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldTimestamp = "timestamp"
	FieldLongitude = "longitude"
	FieldLatitude  = "latitude"
	FieldAccuracy  = "accuracy"
	FieldURL       = "url"
	FieldKind      = "kind"
)

// Fields lists the record columns in source order.
var Fields = []string{
	FieldID, FieldUserID, FieldTimestamp, FieldLongitude,
	FieldLatitude, FieldAccuracy, FieldURL, FieldKind,
}

// Header is the conventional header row for record sources.
var Header = []string{
	"Photo_ID", "User_ID", "Timestamp", "Longitude",
	"Latitude", "Accuracy", "URL", "Marker(photo=0 video=1)",
}

var (
	ErrMissingField = errors.New("missing field")
	ErrNotFinite    = errors.New("not a finite number")
	ErrBadKind      = errors.New("kind must be 0 (photo) or 1 (video)")
)

// FieldError identifies the field that could not be parsed.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseFields builds a record from the eight source columns, in Fields order.
// Values are whitespace-trimmed. Columns beyond the eighth are ignored.
// The returned record has a zero ID; the store assigns it.
func ParseFields(fields []string) (Record, error) {
	if len(fields) < len(Fields) {
		return Record{}, &FieldError{
			Field: Fields[len(fields)],
			Err:   fmt.Errorf("%w: got %d of %d columns", ErrMissingField, len(fields), len(Fields)),
		}
	}
	v := make([]string, len(Fields))
	for i := range Fields {
		v[i] = strings.TrimSpace(fields[i])
	}

	ts, err := ParseTime(v[2])
	if err != nil {
		return Record{}, &FieldError{Field: FieldTimestamp, Value: v[2], Err: err}
	}
	lng, err := parseCoordinate(FieldLongitude, v[3])
	if err != nil {
		return Record{}, err
	}
	lat, err := parseCoordinate(FieldLatitude, v[4])
	if err != nil {
		return Record{}, err
	}
	acc, err := strconv.Atoi(v[5])
	if err != nil {
		return Record{}, &FieldError{Field: FieldAccuracy, Value: v[5], Err: err}
	}
	kind, err := strconv.Atoi(v[7])
	if err != nil {
		return Record{}, &FieldError{Field: FieldKind, Value: v[7], Err: err}
	}
	if !Kind(kind).Valid() {
		return Record{}, &FieldError{Field: FieldKind, Value: v[7], Err: ErrBadKind}
	}

	return Record{
		PhotoID:  v[0],
		UserID:   conceptual.UserID(v[1]),
		Time:     ts,
		Point:    orb.Point{lng, lat},
		Accuracy: acc,
		URL:      v[6],
		Kind:     Kind(kind),
	}, nil
}

func parseCoordinate(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Value: s, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &FieldError{Field: field, Value: s, Err: ErrNotFinite}
	}
	return f, nil
}

// DecodeJSON decodes one JSON object keyed by Fields, e.g.
//
//	{"id":"4257224959","user_id":"26303188@N00","timestamp":"2010-01-09 09:39:19.0",
//	 "longitude":145.314132,"latitude":-37.765855,"accuracy":16,"url":"http://...","kind":0}
//
// Numbers may be JSON numbers or strings. Values go through the same parsing as ParseFields.
func DecodeJSON(data []byte) (Record, error) {
	if !gjson.ValidBytes(data) {
		return Record{}, &FieldError{Field: FieldID, Value: string(data), Err: errors.New("invalid json")}
	}
	results := gjson.GetManyBytes(data, Fields...)
	fields := make([]string, len(Fields))
	for i, res := range results {
		if !res.Exists() {
			return Record{}, &FieldError{Field: Fields[i], Err: ErrMissingField}
		}
		if res.Type == gjson.Number {
			// Keep the source text so integer fields don't pass through float64.
			fields[i] = res.Raw
			continue
		}
		fields[i] = res.String()
	}
	return ParseFields(fields)
}
