package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"participant", RoleParticipant, false},
		{"organizer", RoleOrganizer, false},
		{" Organizer ", RoleOrganizer, false},
		{"admin", RoleParticipant, true},
		{"", RoleParticipant, true},
		{"organiser", RoleParticipant, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleOrganizer})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"organizer"}`, string(b))

	var out struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"participant"}`), &out))
	assert.Equal(t, RoleParticipant, out.Role)
	require.Error(t, json.Unmarshal([]byte(`{"role":"root"}`), &out))

	_, err = Role(7).MarshalText()
	require.Error(t, err)
}

func TestCaller(t *testing.T) {
	ev := &Event{ID: "ev-1", CreatedBy: "org-1"}
	owner := Caller{UserID: "org-1", Role: RoleOrganizer}
	other := Caller{UserID: "org-2", Role: RoleOrganizer}
	participant := Caller{UserID: "p-1"}

	assert.True(t, owner.IsOrganizer())
	assert.False(t, participant.IsOrganizer())
	assert.True(t, owner.Owns(ev))
	assert.False(t, other.Owns(ev))
	assert.False(t, Caller{}.Owns(&Event{}), "empty ids never own")
	assert.False(t, owner.Owns(nil))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]string{"a", "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.True(t, errors.Is(fmt.Errorf("create: %w", err), ErrValidationFailed))
	assert.Equal(t, "a; b", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"a", "b"}, ve.Violations)

	assert.NoError(t, NewValidationError(nil))
}

func TestRanked(t *testing.T) {
	tallies := []OptionTally{
		{OptionID: "a", Count: 1},
		{OptionID: "b", Count: 3},
		{OptionID: "c", Count: 1},
		{OptionID: "d", Count: 3},
	}
	ranked := Ranked(tallies)
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.OptionID
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids, "ties broken by insertion order")
	assert.Equal(t, "a", tallies[0].OptionID, "input not reordered")

	lead := Leading(tallies)
	require.NotNil(t, lead)
	assert.Equal(t, "b", lead.OptionID)

	assert.Nil(t, Leading([]OptionTally{{OptionID: "a"}, {OptionID: "b"}}))
	assert.Nil(t, Leading(nil))
}

func TestEvent_Options(t *testing.T) {
	ev := &Event{Options: []Option{{ID: "o1", Name: "A"}, {ID: "o2", Name: "B"}}}
	assert.True(t, ev.HasOption("o2"))
	assert.False(t, ev.HasOption("o3"))
	assert.Equal(t, 1, ev.OptionIndex("o2"))
	assert.Equal(t, []string{"A", "B"}, ev.OptionNames())

	c := ev.Clone()
	c.Options[0].Name = "changed"
	assert.Equal(t, "A", ev.Options[0].Name)
}

func TestPaginationParams(t *testing.T) {
	p := PaginationParams{Page: 2, PageSize: 10}
	assert.Equal(t, 10, p.Offset())
	start, end := p.Window(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
	start, end = p.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, 0, PaginationParams{Page: 0, PageSize: 10}.Offset())
	assert.Equal(t, 0, PaginationParams{Page: 3, PageSize: 0}.Offset())
}

func TestPaginationParams_HugePage(t *testing.T) {
	tests := []PaginationParams{
		{Page: math.MaxInt, PageSize: 20},
		{Page: math.MaxInt, PageSize: 1},
		{Page: math.MaxInt/20 + 2, PageSize: 20},
	}
	for _, p := range tests {
		t.Run(fmt.Sprintf("page=%d/size=%d", p.Page, p.PageSize), func(t *testing.T) {
			assert.GreaterOrEqual(t, p.Offset(), 0)
			start, end := p.Window(3)
			assert.Equal(t, 3, start)
			assert.Equal(t, 3, end)
		})
	}
}
