// File path: internal/casebook/patch.go
package casebook

// Patches describe partial updates. A nil field is absent: the matching
// column is left untouched, it is never overwritten with NULL. A present
// mandatory field must not be blank, the same rule creation applies.

type CasePatch struct {
	Name             *string
	ShortDescription *string
	Detective        *string
}

func (p CasePatch) Empty() bool {
	return p.Name == nil && p.ShortDescription == nil && p.Detective == nil
}

func (p CasePatch) Validate() error {
	return presentNotBlank("name", p.Name)
}

type PartyPatch struct {
	Name        *string
	Role        *string
	Description *string
	Alibi       *string
}

func (p PartyPatch) Empty() bool {
	return p.Name == nil && p.Role == nil && p.Description == nil && p.Alibi == nil
}

func (p PartyPatch) Validate() error {
	if err := presentNotBlank("name", p.Name); err != nil {
		return err
	}
	return presentNotBlank("role", p.Role)
}

// EvidencePatch replaces the whole suspects list when Suspects is non-nil; a
// pointer to an empty slice clears it.
type EvidencePatch struct {
	Name        *string
	Status      *string
	Place       *string
	Description *string
	Suspects    *[]string
}

func (p EvidencePatch) Empty() bool {
	return p.Name == nil && p.Status == nil && p.Place == nil && p.Description == nil && p.Suspects == nil
}

func (p EvidencePatch) Validate() error {
	if err := presentNotBlank("name", p.Name); err != nil {
		return err
	}
	return presentNotBlank("status", p.Status)
}

type TheoryPatch struct {
	Name    *string
	Content *string
}

func (p TheoryPatch) Empty() bool {
	return p.Name == nil && p.Content == nil
}

func (p TheoryPatch) Validate() error {
	return presentNotBlank("name", p.Name)
}

// TimelineEventPatch carries Timestamp in milliseconds since the Unix epoch.
type TimelineEventPatch struct {
	Timestamp   *int64
	Place       *string
	Status      *string
	Name        *string
	Description *string
}

func (p TimelineEventPatch) Empty() bool {
	return p.Timestamp == nil && p.Place == nil && p.Status == nil && p.Name == nil && p.Description == nil
}

func (p TimelineEventPatch) Validate() error {
	if err := presentNotBlank("status", p.Status); err != nil {
		return err
	}
	return presentNotBlank("name", p.Name)
}

func presentNotBlank(field string, value *string) error {
	if value != nil && blank(*value) {
		return missing(field)
	}
	return nil
}
