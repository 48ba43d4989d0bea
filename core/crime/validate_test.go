package crime

import (
	"encoding/json"
	"errors"
	"testing"
)

func validPayload() map[string]any {
	return map[string]any{
		"case_number":         "23000123",
		"date":                "2023-01-15",
		"time":                "08:30:00",
		"code":                float64(600),
		"incident":            "Theft",
		"police_grid":         float64(87),
		"neighborhood_number": float64(7),
		"block":               "123X MAIN ST",
	}
}

func TestValidateIncidentAcceptsCompletePayload(t *testing.T) {
	inc, err := ValidateIncident(validPayload())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := Incident{
		CaseNumber: "23000123", Date: "2023-01-15", Time: "08:30:00", Code: 600,
		Incident: "Theft", PoliceGrid: 87, NeighborhoodNumber: 7, Block: "123X MAIN ST",
	}
	if inc != want {
		t.Fatalf("got %+v, want %+v", inc, want)
	}
	if inc.DateTime() != "2023-01-15T08:30:00" {
		t.Fatalf("unexpected date_time %q", inc.DateTime())
	}
}

func TestValidateIncidentFromDecodedJSON(t *testing.T) {
	body := `{"case_number":"1","date":"2023-02-01","time":"10:00:00","code":"700","incident":"Auto Theft","police_grid":"12","neighborhood_number":3,"block":"X"}`
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	inc, err := ValidateIncident(payload)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if inc.Code != 700 || inc.PoliceGrid != 12 || inc.NeighborhoodNumber != 3 {
		t.Fatalf("numeric coercion failed: %+v", inc)
	}
}

func TestValidateIncidentRejectsFalsyFields(t *testing.T) {
	fields := []string{"case_number", "date", "time", "code", "incident", "police_grid", "neighborhood_number", "block"}
	falsy := []any{nil, "", float64(0), false}
	for _, field := range fields {
		p := validPayload()
		delete(p, field)
		assertMissing(t, p, field)
		for _, v := range falsy {
			p := validPayload()
			p[field] = v
			assertMissing(t, p, field)
		}
	}
}

func assertMissing(t *testing.T, p map[string]any, field string) {
	t.Helper()
	_, err := ValidateIncident(p)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("%s=%v: expected ValidationError, got %v", field, p[field], err)
	}
	if verr.Message != MsgMissingFields {
		t.Fatalf("%s: unexpected message %q", field, verr.Message)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != field {
		t.Fatalf("%s: unexpected fields %v", field, verr.Fields)
	}
}

func TestValidateIncidentRejectsUnconvertibleValues(t *testing.T) {
	p := validPayload()
	p["code"] = "six hundred"
	p["block"] = map[string]any{"street": "MAIN"}
	_, err := ValidateIncident(p)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != MsgInvalidFields {
		t.Fatalf("expected invalid fields error, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected two invalid fields, got %v", verr.Fields)
	}
	p = validPayload()
	p["police_grid"] = 8.5
	if _, err := ValidateIncident(p); err == nil {
		t.Fatalf("expected fractional grid to be rejected")
	}
}

func TestValidateCaseNumber(t *testing.T) {
	got, err := ValidateCaseNumber(map[string]any{"case_number": "23000123"})
	if err != nil || got != "23000123" {
		t.Fatalf("got %q err %v", got, err)
	}
	got, err = ValidateCaseNumber(map[string]any{"case_number": float64(23000123)})
	if err != nil || got != "23000123" {
		t.Fatalf("numeric case number: got %q err %v", got, err)
	}
	for _, p := range []map[string]any{{}, {"case_number": ""}, {"case_number": nil}} {
		_, err := ValidateCaseNumber(p)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Message != MsgMissingCaseNumber {
			t.Fatalf("%v: expected missing case_number, got %v", p, err)
		}
	}
}

func TestValidateIncidentRequiresCanonicalDateAndTime(t *testing.T) {
	cases := []struct {
		date, time string
		bad        string
	}{
		{"2023-1-5", "08:30:00", "date"},
		{"2023-01-15", "8:30", "time"},
		{"2023-02-30", "08:30:00", "date"},
		{"2023-01-15", "24:00:00", "time"},
		{"2023-01-15T08:30:00", "08:30:00", "date"},
	}
	for _, tc := range cases {
		p := validPayload()
		p["date"] = tc.date
		p["time"] = tc.time
		_, err := ValidateIncident(p)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Message != MsgInvalidFields {
			t.Fatalf("%s %s: expected invalid fields, got %v", tc.date, tc.time, err)
		}
		if len(verr.Fields) != 1 || verr.Fields[0] != tc.bad {
			t.Fatalf("%s %s: unexpected fields %v", tc.date, tc.time, verr.Fields)
		}
	}
}

func TestValidateCaseNumberRejectsFalsy(t *testing.T) {
	for _, v := range []any{"", float64(0), false} {
		_, err := ValidateCaseNumber(map[string]any{"case_number": v})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Message != MsgMissingCaseNumber {
			t.Fatalf("%v: expected missing case_number, got %v", v, err)
		}
	}
}
