package crime

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("truthy", isTruthy)
	})
	return validate
}

// isTruthy rejects the zero value of whatever the interface holds: "", 0 and
// false. nil is left to "required".
func isTruthy(fl validator.FieldLevel) bool {
	v := fl.Field()
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.IsValid() && !v.IsZero()
}

// incidentPayload keeps the raw JSON values. "required" rejects absent and
// null values; "truthy" rejects empty strings, zero and false.
type incidentPayload struct {
	CaseNumber         any `json:"case_number" validate:"required,truthy"`
	Date               any `json:"date" validate:"required,truthy"`
	Time               any `json:"time" validate:"required,truthy"`
	Code               any `json:"code" validate:"required,truthy"`
	Incident           any `json:"incident" validate:"required,truthy"`
	PoliceGrid         any `json:"police_grid" validate:"required,truthy"`
	NeighborhoodNumber any `json:"neighborhood_number" validate:"required,truthy"`
	Block              any `json:"block" validate:"required,truthy"`
}

type caseNumberPayload struct {
	CaseNumber any `json:"case_number" validate:"required,truthy"`
}

// ValidateIncident checks that all eight incident fields are present and
// non-empty, then coerces them into an Incident. Codes and neighborhood
// numbers are not checked against the reference tables.
func ValidateIncident(payload map[string]any) (Incident, error) {
	p := incidentPayload{
		CaseNumber:         payload["case_number"],
		Date:               payload["date"],
		Time:               payload["time"],
		Code:               payload["code"],
		Incident:           payload["incident"],
		PoliceGrid:         payload["police_grid"],
		NeighborhoodNumber: payload["neighborhood_number"],
		Block:              payload["block"],
	}
	if err := getValidator().Struct(p); err != nil {
		return Incident{}, missingFields(err, MsgMissingFields)
	}
	var inc Incident
	var bad []string
	text := func(name string, v any, dst *string) {
		s, ok := toText(v)
		if !ok {
			bad = append(bad, name)
			return
		}
		*dst = s
	}
	integer := func(name string, v any, dst *int) {
		n, ok := toInt(v)
		if !ok {
			bad = append(bad, name)
			return
		}
		*dst = n
	}
	text("case_number", p.CaseNumber, &inc.CaseNumber)
	text("date", p.Date, &inc.Date)
	text("time", p.Time, &inc.Time)
	integer("code", p.Code, &inc.Code)
	text("incident", p.Incident, &inc.Incident)
	integer("police_grid", p.PoliceGrid, &inc.PoliceGrid)
	integer("neighborhood_number", p.NeighborhoodNumber, &inc.NeighborhoodNumber)
	text("block", p.Block, &inc.Block)
	if inc.Date != "" && !matchesLayout(dateLayout, inc.Date) {
		bad = append(bad, "date")
	}
	if inc.Time != "" && !matchesLayout(timeLayout, inc.Time) {
		bad = append(bad, "time")
	}
	if len(bad) > 0 {
		return Incident{}, &ValidationError{Fields: bad, Message: MsgInvalidFields}
	}
	return inc, nil
}

func ValidateCaseNumber(payload map[string]any) (string, error) {
	p := caseNumberPayload{CaseNumber: payload["case_number"]}
	if err := getValidator().Struct(p); err != nil {
		return "", missingFields(err, MsgMissingCaseNumber)
	}
	s, ok := toText(p.CaseNumber)
	if !ok {
		return "", &ValidationError{Fields: []string{"case_number"}, Message: MsgInvalidFields}
	}
	return s, nil
}

// matchesLayout requires raw to be the canonical rendering of layout so the
// stored date_time keeps fixed offsets.
func matchesLayout(layout, raw string) bool {
	t, err := time.Parse(layout, raw)
	return err == nil && t.Format(layout) == raw
}

func missingFields(err error, msg string) error {
	verr := &ValidationError{Message: msg}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.Fields = append(verr.Fields, fe.Field())
		}
	}
	return verr
}

func toText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || math.Abs(val) > math.MaxInt32 {
			return 0, false
		}
		return int(val), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
