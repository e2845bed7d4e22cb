package game

import (
	"strings"

	"github.com/hollowvale/mud/internal/storage"
	"github.com/hollowvale/mud/internal/text"
)

// EntityView is everything the renderer needs to describe an actor. Both
// player characters and mobiles produce one.
type EntityView struct {
	Name     string
	Race     string
	Gender   Gender
	UserDesc string
	Detailed string

	Inventory      *Inventory
	MaxCarryWeight float64
	Exposure       *ExposureStatus
}

// View assembles the renderable view of a character.
func (c *Character) View(dict *Dictionary) EntityView {
	return EntityView{
		Name:           c.Name,
		Race:           raceName(dict, c.Race),
		Gender:         c.Gender,
		UserDesc:       c.UserDesc,
		Inventory:      c.Inventory,
		MaxCarryWeight: c.MaxCarryWeight,
		Exposure:       c.Exposure,
	}
}

// View assembles the renderable view of a mobile instance.
func (mi *MobileInstance) View(dict *Dictionary) EntityView {
	def := mi.Definition()
	v := EntityView{
		UserDesc:  mi.UserDesc,
		Inventory: mi.Inventory,
		Exposure:  mi.Exposure,
	}
	if def != nil {
		v.Name = def.Name
		v.Race = raceName(dict, def.Race)
		v.Gender = def.Gender
		v.Detailed = def.DetailedDesc
		v.MaxCarryWeight = def.MaxCarryWeight
	}
	return v
}

func raceName(dict *Dictionary, id storage.Identifier) string {
	if dict == nil || id == "" {
		return ""
	}
	race := dict.Races.Get(string(id))
	if race == nil {
		return ""
	}
	return race.Name
}

// Describe renders the full look-at text for an entity. The same assembly
// serves self-look (self true, second person) and other-look (third person,
// pronouns from the target's own gender).
func (v EntityView) Describe(self bool) string {
	p := PronounsFor(v.Gender)
	if self {
		p = SecondPerson
	}

	var lines []string

	// Identity line
	if self {
		if v.Race != "" {
			lines = append(lines, "You are "+v.Name+", "+text.WithArticle(v.Race)+".")
		} else {
			lines = append(lines, "You are "+v.Name+".")
		}
	} else {
		lines = append(lines, "You see "+v.Name+".")
		if v.Detailed != "" {
			lines = append(lines, v.Detailed)
		}
	}

	// Pronoun-prefixed user description
	if v.UserDesc != "" {
		lines = append(lines, text.Capitalize(p.Subjective)+" "+p.Is+" "+v.UserDesc)
	}

	// Weather status, shown anywhere once any channel is nonzero
	if v.Exposure != nil {
		if s := v.Exposure.Describe(p); s != "" {
			lines = append(lines, s)
		}
	}

	// Burden status from the weight/capacity ratio
	if s := burdenSentence(p, v.Inventory, v.MaxCarryWeight); s != "" {
		lines = append(lines, s)
	}

	lines = append(lines, v.inventoryLines(p)...)

	return strings.Join(lines, "\n")
}

// burdenSentence maps carried-weight ratio to a status tier. Ratio, not
// absolute weight: a pack mule and a child strain at very different loads.
func burdenSentence(p Pronouns, inv *Inventory, maxWeight float64) string {
	if inv == nil || maxWeight <= 0 {
		return ""
	}
	ratio := inv.Weight() / maxWeight
	subj := text.Capitalize(p.Subjective)
	switch {
	case ratio > 1.0:
		return subj + " " + p.Is + " struggling to move under the weight."
	case ratio >= 0.8:
		return subj + " look" + thirdS(p) + " terribly overburdened."
	case ratio >= 0.6:
		return subj + " look" + thirdS(p) + " to be straining to carry the load."
	default:
		return ""
	}
}

// inventoryLines renders what an observer can see being carried: held items
// listed individually, the rest grouped with counts. Container contents are
// invisible from the outside; the satchel shows, the purse inside it never
// does.
func (v EntityView) inventoryLines(p Pronouns) []string {
	if v.Inventory == nil {
		return nil
	}
	subj := text.Capitalize(p.Subjective)

	var held, carried []string
	for _, group := range v.Inventory.GroupVisible() {
		if group.Object.HasFlag(ObjectFlagHeld) {
			for i := 0; i < group.Count; i++ {
				held = append(held, text.WithArticle(group.Object.Name))
			}
			continue
		}
		if group.Count > 1 && group.Object.Plural != "" {
			carried = append(carried, text.NumberWord(group.Count)+" "+group.Object.Plural)
		} else {
			carried = append(carried, text.CountedName(group.Object.Name, group.Count))
		}
	}

	var lines []string
	if len(held) > 0 {
		lines = append(lines, subj+" "+p.Is+" holding: "+text.JoinAnd(held)+".")
	}
	if len(carried) > 0 {
		lines = append(lines, subj+" "+p.Is+" carrying: "+text.JoinAnd(carried)+".")
	}
	return lines
}
