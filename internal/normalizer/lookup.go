package normalizer

import "strings"

// FindByEmail returns the first record whose email matches, ignoring case.
func FindByEmail(records []RawRecord, email string) (RawRecord, bool) {
	want := strings.ToLower(email)
	for _, rec := range records {
		if got := rec.Text("", "email"); got != "" && strings.ToLower(got) == want {
			return rec, true
		}
	}
	return nil, false
}
