package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Gender is an entity's grammatical gender. It drives every pronoun and
// verb-agreement decision in rendered text.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonbinary Gender = "nonbinary"
)

func (g Gender) Validate() error {
	el := errors.NewErrorList()
	switch g {
	case GenderMale, GenderFemale, GenderNonbinary, "":
	default:
		el.Add(fmt.Errorf("invalid gender %q (must be %s, %s, or %s)",
			g, GenderMale, GenderFemale, GenderNonbinary))
	}
	return el.Err()
}

// Pronouns is the full pronoun set for one gender, plus the matching
// present-tense copula so "they" pairs with "are" instead of "is".
type Pronouns struct {
	Subjective string // he, she, they
	Objective  string // him, her, them
	Possessive string // his, her, their
	Reflexive  string // himself, herself, themself
	Is         string // is, are
}

// PronounsFor resolves a gender to its pronoun set. Every render site must
// go through this; an unset gender reads as nonbinary.
func PronounsFor(g Gender) Pronouns {
	switch g {
	case GenderMale:
		return Pronouns{Subjective: "he", Objective: "him", Possessive: "his", Reflexive: "himself", Is: "is"}
	case GenderFemale:
		return Pronouns{Subjective: "she", Objective: "her", Possessive: "her", Reflexive: "herself", Is: "is"}
	default:
		return Pronouns{Subjective: "they", Objective: "them", Possessive: "their", Reflexive: "themself", Is: "are"}
	}
}

// SecondPerson is the pronoun set used when an entity views itself.
var SecondPerson = Pronouns{Subjective: "you", Objective: "you", Possessive: "your", Reflexive: "yourself", Is: "are"}
