package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	d := DateOf(time.Date(2025, time.March, 9, 23, 59, 0, 0, loc))

	assert.Equal(t, "2025-03-09", d.String())
	assert.Equal(t, time.UTC, d.Location())
	assert.Zero(t, d.Hour())
}

func TestDaysUntil(t *testing.T) {
	start := NewDate(2025, time.February, 25)

	tests := []struct {
		name   string
		target Date
		want   int
	}{
		{"same day", start, 0},
		{"one week", NewDate(2025, time.March, 4), 7},
		{"six days", NewDate(2025, time.March, 3), 6},
		{"across year", NewDate(2026, time.February, 25), 365},
		{"past", NewDate(2025, time.February, 20), -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, start.DaysUntil(tt.target))
		})
	}
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.March, 1), NewDate(2024, time.February, 28).AddDays(2))
	assert.Equal(t, NewDate(2024, time.December, 31), NewDate(2025, time.January, 1).AddDays(-1))
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		When Date `json:"when"`
	}

	out, err := json.Marshal(payload{When: NewDate(2025, time.January, 31)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2025-01-31"}`, string(out))

	out, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":null}`, string(out))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2025-06-01"}`), &p))
	assert.Equal(t, NewDate(2025, time.June, 1), p.When)

	p = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2025-06-01T22:00:00Z"}`), &p))
	assert.Equal(t, NewDate(2025, time.June, 1), p.When)

	p = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"when":null}`), &p))
	assert.True(t, p.When.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"when":"01/06/2025"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"when":20250601}`), &p))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.December, 24), d)

	_, err = ParseDate("2025-13-01")
	assert.Error(t, err)
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2025, time.May, 2), d)

	require.NoError(t, d.Scan("2025-05-03"))
	assert.Equal(t, NewDate(2025, time.May, 3), d)

	require.NoError(t, d.Scan([]byte("2025-05-04")))
	assert.Equal(t, NewDate(2025, time.May, 4), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2025, time.May, 2).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC), v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDatePgtype(t *testing.T) {
	pd, err := NewDate(2025, time.July, 14).DateValue()
	require.NoError(t, err)
	assert.True(t, pd.Valid)
	assert.Equal(t, "2025-07-14", pd.Time.Format(DateLayout))

	pd, err = Date{}.DateValue()
	require.NoError(t, err)
	assert.False(t, pd.Valid)

	var d Date
	require.NoError(t, d.ScanDate(pgtype.Date{Time: time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC), Valid: true}))
	assert.Equal(t, NewDate(2025, time.July, 14), d)

	require.NoError(t, d.ScanDate(pgtype.Date{}))
	assert.True(t, d.IsZero())

	assert.Error(t, d.ScanDate(pgtype.Date{Valid: true, InfinityModifier: pgtype.Infinity}))
}
