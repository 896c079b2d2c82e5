// File path: internal/seed/seed.go

// Package seed loads the template "Aunt Bethesda" case used for demos.
package seed

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/casemate/internal/casebook"
	"github.com/nicodishanthj/casemate/internal/common"
)

const (
	CaseName        = "Aunt Bethesda"
	CaseDescription = "Aunt Bethesda was killed on the 31st of December 2025 by one of her closest assistant"
)

// Writer is the subset of the store needed to load the template.
type Writer interface {
	CreateCase(ctx context.Context, in casebook.CaseInput) (string, error)
	CreateParty(ctx context.Context, in casebook.PartyInput) (string, error)
}

type party struct {
	name, role, description, alibi string
}

var parties = []party{
	{"Renran", "detective", "", ""},
	{"Clay", "detective", "", ""},
	{"Reem", "detective", "", ""},
	{"Manitej", "detective", "", ""},
	{"Sebastian", "detective", "", ""},

	{"Euan", "suspect", "Ginger", "Was in the wine cellar tasting wine"},
	{"Tongyu", "suspect", "Gardener", "Was mowing the grass"},
	{"Hrby", "suspect", "Scientist", ""},
	{"Kasper", "suspect", "Cook", ""},
	{"Jane", "suspect", "", ""},
}

// Result lists the identifiers created by Populate.
type Result struct {
	CaseID  string
	Parties map[string]string
}

// Populate inserts a new copy of the template case and its parties. It does
// not look for an existing copy; running it twice yields two cases.
func Populate(ctx context.Context, w Writer) (Result, error) {
	logger := common.Logger()
	description := CaseDescription
	caseID, err := w.CreateCase(ctx, casebook.CaseInput{Name: CaseName, ShortDescription: &description})
	if err != nil {
		return Result{}, fmt.Errorf("seed case: %w", err)
	}
	result := Result{CaseID: caseID, Parties: make(map[string]string, len(parties))}
	for _, p := range parties {
		id, err := w.CreateParty(ctx, casebook.PartyInput{
			CaseID:      caseID,
			Name:        p.name,
			Role:        p.role,
			Description: optional(p.description),
			Alibi:       optional(p.alibi),
		})
		if err != nil {
			return result, fmt.Errorf("seed party %s: %w", p.name, err)
		}
		result.Parties[p.name] = id
	}
	logger.Info("seed: template case loaded", "case", caseID, "parties", len(result.Parties))
	return result, nil
}

// optional maps the empty string to an absent value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
