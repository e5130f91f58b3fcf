package domain

import "strings"

// Category is the inheritance model a gene follows.
type Category string

const (
	CategoryRecessive          Category = "RECESSIVE"
	CategoryIncompleteDominant Category = "INCOMPLETE_DOMINANT"
	CategoryDominant           Category = "DOMINANT"
	CategoryOther              Category = "OTHER"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryRecessive, CategoryIncompleteDominant, CategoryDominant, CategoryOther:
		return true
	}
	return false
}

// Weight orders categories for display: Dominant < Incomplete Dominant <
// Recessive < Other. Unknown values sort after Other.
func (c Category) Weight() int {
	switch c {
	case CategoryDominant:
		return 0
	case CategoryIncompleteDominant:
		return 1
	case CategoryRecessive:
		return 2
	case CategoryOther:
		return 3
	}
	return 4
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryRecessive:
		return "Recessive"
	case CategoryIncompleteDominant:
		return "Incomplete Dominant"
	case CategoryDominant:
		return "Dominant"
	case CategoryOther:
		return "Other"
	}
	return ""
}

// Modeled reports whether the calculator has a quantitative model for c.
func (c Category) Modeled() bool {
	switch c {
	case CategoryRecessive, CategoryIncompleteDominant, CategoryDominant:
		return true
	}
	return false
}

// ParseCategory accepts the enum value as well as the loose spellings
// breeders use ("inc dom", "co-dominant", "codom", "recessive").
func ParseCategory(s string) (Category, bool) {
	key := strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "")
	switch key {
	case "recessive", "rec":
		return CategoryRecessive, true
	case "incompletedominant", "incdom", "incompletedom", "codominant", "codom":
		return CategoryIncompleteDominant, true
	case "dominant", "dom":
		return CategoryDominant, true
	case "other":
		return CategoryOther, true
	}
	return "", false
}

// TokenKind says whether a classified token is expressed or carried.
type TokenKind string

const (
	TokenKindVisual TokenKind = "VISUAL"
	TokenKindHet    TokenKind = "HET"
)

func (k TokenKind) String() string { return string(k) }

func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindVisual, TokenKindHet:
		return true
	}
	return false
}

// Sex of an animal record. The engine models no sex-linked inheritance;
// the value is carried for display only.
type Sex string

const (
	SexMale    Sex = "MALE"
	SexFemale  Sex = "FEMALE"
	SexUnknown Sex = "UNKNOWN"
)

func (s Sex) String() string { return string(s) }

func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}
