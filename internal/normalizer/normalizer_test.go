package normalizer

import (
	"encoding/json"
	"testing"
	"time"

	"krixo-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 123000000, time.UTC)

func newTestNormalizer() *Normalizer {
	return New(
		WithClock(func() time.Time { return fixedNow }),
		WithIDSource(func() string { return "abc" }),
	)
}

func mustParse(t *testing.T, body string) Payload {
	t.Helper()
	p, err := ParsePayload([]byte(body))
	require.NoError(t, err)
	return p
}

// ==========================
// Command Tests
// ==========================

func TestCommand_NameFallback(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		record   RawRecord
		expected string
	}{
		{"fullname wins", RawRecord{"fullname": "Sara", "name": "X"}, "Sara"},
		{"empty fullname falls through", RawRecord{"fullname": "", "name": "X"}, "X"},
		{"null fullname falls through", RawRecord{"fullname": nil, "firstName": "Y"}, "Y"},
		{"nothing present", RawRecord{}, Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Command(tt.record).Name)
		})
	}
}

func TestCommand_Services(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		record   RawRecord
		expected []string
	}{
		{"comma string split and trimmed", RawRecord{"service": "a, b,c"}, []string{"a", "b", "c"}},
		{"list kept", RawRecord{"services": []interface{}{"cleaning", json.Number("2")}}, []string{"cleaning", "2"}},
		{"empty list kept", RawRecord{"services": []interface{}{}}, []string{}},
		{"non string service wrapped", RawRecord{"service": json.Number("7")}, []string{"7"}},
		{"missing service", RawRecord{}, []string{Placeholder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Command(tt.record).Services)
		})
	}
}

func TestCommand_BackendAliases(t *testing.T) {
	n := newTestNormalizer()

	cmd := n.Command(RawRecord{
		"id":          json.Number("12"),
		"fullname":    "Karim",
		"number":      "0555123456",
		"flor":        "3",
		"itemtype":    "أثاث",
		"workers":     json.Number("4"),
		"start":       "Alger",
		"distination": "Oran",
		"prise":       "15000",
	})

	assert.Equal(t, "12", cmd.ID)
	assert.Equal(t, json.Number("12"), cmd.BackendID)
	assert.Equal(t, "0555123456", cmd.Phone)
	assert.Equal(t, "3", cmd.Floor)
	assert.Equal(t, "أثاث", cmd.ItemType)
	assert.Equal(t, "4", cmd.Workers)
	assert.Equal(t, "Oran", cmd.End)
	assert.Equal(t, "15000", cmd.Price)
	assert.Equal(t, models.CommandPending, cmd.Status)
	assert.Equal(t, "", cmd.Email)
	assert.Equal(t, "", cmd.Description)
	assert.Equal(t, "2024-03-01T09:30:00.123Z", cmd.CreatedAt)
}

func TestCommand_GeneratedID(t *testing.T) {
	cmd := newTestNormalizer().Command(RawRecord{"id": "", "_id": nil})
	assert.Equal(t, "cmd-1709285400123-abc", cmd.ID)
	assert.Nil(t, cmd.BackendID)
}

// ==========================
// Worker Tests
// ==========================

func TestWorker_Normalize(t *testing.T) {
	n := newTestNormalizer()

	w := n.Worker(RawRecord{
		"_id":        "w9",
		"fillname":   "Amine",
		"fullname":   "ignored",
		"phone":      "0666000000",
		"position":   "سائق",
		"isaccepted": "true",
		"createdAt":  "2024-01-01T00:00:00Z",
	})

	assert.Equal(t, "w9", w.ID)
	assert.Equal(t, "Amine", w.Name)
	assert.Equal(t, Placeholder, w.Email)
	assert.Equal(t, "0666000000", w.Phone)
	assert.Equal(t, Placeholder, w.Experience)
	assert.Equal(t, "", w.Message)
	assert.Equal(t, models.AcceptanceAccepted, w.IsAccepted)
	assert.Equal(t, "2024-01-01T00:00:00Z", w.CreatedAt)
	assert.Equal(t, "Amine", w.Raw["fillname"])
}

func TestWorker_GeneratedID(t *testing.T) {
	w := newTestNormalizer().Worker(RawRecord{})
	assert.Equal(t, "worker-1709285400123-abc", w.ID)
}

func TestCoerceAcceptance(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		present  bool
		expected models.Acceptance
	}{
		{"absent", nil, false, models.AcceptancePending},
		{"explicit null", nil, true, models.AcceptanceRejected},
		{"empty string", "", true, models.AcceptancePending},
		{"bool true", true, true, models.AcceptanceAccepted},
		{"string true", "true", true, models.AcceptanceAccepted},
		{"bool false", false, true, models.AcceptanceRejected},
		{"string false", "false", true, models.AcceptanceRejected},
		{"other string", "yes", true, models.AcceptanceRejected},
		{"number", json.Number("1"), true, models.AcceptanceRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceAcceptance(tt.value, tt.present))
		})
	}
}

// ==========================
// Payload Tests
// ==========================

func TestExtractRecords(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{"plain list", `[{"id":"1"},{"id":"2"}]`, []string{"1", "2"}},
		{"envelope first list wins", `{"count":2,"data":[{"id":"a"}],"other":[{"id":"b"}]}`, []string{"a"}},
		{"envelope without list", `{"message":"ok"}`, nil},
		{"scalar", `"nothing"`, nil},
		{"empty body", ``, nil},
		{"non object elements skipped", `[1,"x",{"id":"z"},null]`, []string{"z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ExtractRecords(mustParse(t, tt.body))
			var ids []string
			for _, r := range records {
				ids = append(ids, r.Text("", "id"))
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestParsePayload_Invalid(t *testing.T) {
	_, err := ParsePayload([]byte(`{"id":`))
	assert.Error(t, err)
}

func TestWorkers_FromEnvelope(t *testing.T) {
	n := newTestNormalizer()
	workers := n.Workers(mustParse(t, `{"workers":[
		{"id":5,"fullname":"Nadia"},
		{"id":"w1","isaccepted":null},
		{"id":"w3","isaccepted":""}]}`))

	require.Len(t, workers, 3)
	assert.Equal(t, "5", workers[0].ID)
	assert.Equal(t, "Nadia", workers[0].Name)
	assert.True(t, workers[0].IsPending())
	assert.Equal(t, models.AcceptanceRejected, workers[1].IsAccepted)
	assert.True(t, workers[2].IsPending())
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(json.Number("0")))
	assert.False(t, Truthy(0.0))
	assert.True(t, Truthy("0"))
	assert.True(t, Truthy(json.Number("3")))
	assert.True(t, Truthy([]interface{}{}))
}

func TestFindByEmail(t *testing.T) {
	records := []RawRecord{{"id": "1", "email": "a@b.dz"}, {"id": "2", "email": "Sara@Krixo.com"}, {"id": "3"}}

	rec, ok := FindByEmail(records, "sara@krixo.COM")
	require.True(t, ok)
	assert.Equal(t, "2", rec["id"])

	_, ok = FindByEmail(records, "")
	assert.False(t, ok)
	_, ok = FindByEmail(records, "none@b.dz")
	assert.False(t, ok)
}

func TestFirstRecord(t *testing.T) {
	rec, ok := FirstRecord(mustParse(t, `{"id":4,"email":"x@y.dz"}`))
	require.True(t, ok)
	assert.Equal(t, "4", Stringify(rec["id"]))

	rec, ok = FirstRecord(mustParse(t, `[{"id":"9"},{"id":"10"}]`))
	require.True(t, ok)
	assert.Equal(t, "9", rec["id"])

	_, ok = FirstRecord(mustParse(t, `[]`))
	assert.False(t, ok)
	_, ok = FirstRecord(mustParse(t, `"nope"`))
	assert.False(t, ok)
}
