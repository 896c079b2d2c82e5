// File path: internal/casebook/input_test.go
package casebook

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidateReportsFirstMissingField(t *testing.T) {
	ts := int64(1767139200000)
	tests := []struct {
		name  string
		input interface{ Validate() error }
		field string
	}{
		{name: "case without name", input: CaseInput{}, field: "name"},
		{name: "case with blank name", input: CaseInput{Name: "   "}, field: "name"},
		{name: "party without case", input: PartyInput{Name: "Euan", Role: "suspect"}, field: "caseid"},
		{name: "party without name", input: PartyInput{CaseID: "c", Role: "suspect"}, field: "name"},
		{name: "party without role", input: PartyInput{CaseID: "c", Name: "Euan"}, field: "role"},
		{name: "evidence without case", input: EvidenceInput{Name: "Knife"}, field: "caseid"},
		{name: "evidence without name", input: EvidenceInput{CaseID: "c"}, field: "name"},
		{name: "theory without name", input: TheoryInput{CaseID: "c"}, field: "name"},
		{name: "timeline without timestamp", input: TimelineEventInput{CaseID: "c", Status: "confirmed", Name: "Dinner"}, field: "timestamp"},
		{name: "timeline without status", input: TimelineEventInput{CaseID: "c", Timestamp: &ts, Name: "Dinner"}, field: "status"},
		{name: "timeline without name", input: TimelineEventInput{CaseID: "c", Timestamp: &ts, Status: "confirmed"}, field: "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			var missingErr *MissingFieldError
			require.True(t, errors.As(err, &missingErr), "expected MissingFieldError, got %v", err)
			assert.Equal(t, tt.field, missingErr.Field)
			assert.Equal(t, tt.field+" is required", err.Error())
		})
	}
}

func TestInputValidateAcceptsCompleteInput(t *testing.T) {
	ts := int64(0)
	assert.NoError(t, CaseInput{Name: "Aunt Bethesda"}.Validate())
	assert.NoError(t, PartyInput{CaseID: "c", Name: "Euan", Role: "suspect"}.Validate())
	assert.NoError(t, EvidenceInput{CaseID: "c", Name: "Knife"}.Validate())
	assert.NoError(t, TheoryInput{CaseID: "c", Name: "Poison"}.Validate())
	assert.NoError(t, TimelineEventInput{CaseID: "c", Timestamp: &ts, Status: "confirmed", Name: "Epoch"}.Validate())
}

func TestPatchEmpty(t *testing.T) {
	name := "x"
	var suspects []string
	assert.True(t, CasePatch{}.Empty())
	assert.False(t, CasePatch{Detective: &name}.Empty())
	assert.True(t, PartyPatch{}.Empty())
	assert.False(t, PartyPatch{Alibi: &name}.Empty())
	assert.True(t, EvidencePatch{}.Empty())
	assert.False(t, EvidencePatch{Suspects: &suspects}.Empty())
	assert.True(t, TheoryPatch{}.Empty())
	assert.False(t, TheoryPatch{Content: &name}.Empty())
	assert.True(t, TimelineEventPatch{}.Empty())
	assert.False(t, TimelineEventPatch{Name: &name}.Empty())
}

func TestPatchValidateRejectsBlankMandatoryFields(t *testing.T) {
	blankValue := "  "
	empty := ""
	tests := []struct {
		name  string
		patch interface{ Validate() error }
		field string
	}{
		{name: "case name", patch: CasePatch{Name: &blankValue}, field: "name"},
		{name: "party name", patch: PartyPatch{Name: &empty}, field: "name"},
		{name: "party role", patch: PartyPatch{Role: &blankValue}, field: "role"},
		{name: "evidence name", patch: EvidencePatch{Name: &blankValue}, field: "name"},
		{name: "evidence status", patch: EvidencePatch{Status: &empty}, field: "status"},
		{name: "theory name", patch: TheoryPatch{Name: &blankValue}, field: "name"},
		{name: "timeline status", patch: TimelineEventPatch{Status: &blankValue}, field: "status"},
		{name: "timeline name", patch: TimelineEventPatch{Name: &empty}, field: "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var missingErr *MissingFieldError
			require.ErrorAs(t, tt.patch.Validate(), &missingErr)
			assert.Equal(t, tt.field, missingErr.Field)
		})
	}
}

func TestPatchValidateAllowsBlankOptionalFields(t *testing.T) {
	empty := ""
	assert.NoError(t, CasePatch{}.Validate())
	assert.NoError(t, CasePatch{Detective: &empty, ShortDescription: &empty}.Validate())
	assert.NoError(t, PartyPatch{Alibi: &empty, Description: &empty}.Validate())
	assert.NoError(t, EvidencePatch{Place: &empty}.Validate())
	assert.NoError(t, TheoryPatch{Content: &empty}.Validate())
	assert.NoError(t, TimelineEventPatch{Place: &empty}.Validate())
}

func TestMillisRoundTrip(t *testing.T) {
	ms := int64(1767225599123)
	got := TimeFromMillis(ms)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, ms, MillisFromTime(got))
	assert.Equal(t, ms, MillisFromTime(got.In(time.FixedZone("CET", 3600))))
}
