package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Race defines a playable race loaded from asset files.
type Race struct {
	Name         string         `json:"name"`
	Abbreviation string         `json:"abbreviation"`
	Stats        map[string]int `json:"stats"`
	Perks        []string       `json:"perks"`

	// BaseCarryWeight seeds a new character's max carry weight.
	BaseCarryWeight float64 `json:"base_carry_weight,omitempty"`
}

func (r *Race) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("race name is required"))
	}
	for _, p := range r.Perks {
		el.Add(func() error {
			switch p {
			case "darkvision", "weatherproof":
				return nil
			default:
				return fmt.Errorf("unknown perk: %s", p)
			}
		}())
	}

	return el.Err()
}

func (r *Race) Selector() string {
	return r.Name
}
