package recommend

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/avoskres/career-compass/internal/interview"
)

//go:embed directions.yaml
var directionsYAML []byte

// Trait tags a direction with a coarse property the selection rules and the
// preference refiner key on.
type Trait string

const (
	TraitPhysical       Trait = "physical"
	TraitCustomerFacing Trait = "customer_facing"
	TraitDriving        Trait = "driving"
	TraitFixedSite      Trait = "fixed_site"
	TraitNeedsCourse    Trait = "needs_course"
	TraitOutdoor        Trait = "outdoor"
	TraitShiftWork      Trait = "shift_work"
)

// directionDef is a static catalog entry.
type directionDef struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Traits []Trait  `yaml:"traits"`
	Why    []string `yaml:"why"`
	Chips  []string `yaml:"chips"`
}

type directionsFile struct {
	Directions []*directionDef `yaml:"directions"`
}

var directionCatalog = mustLoadDirections(directionsYAML)

func mustLoadDirections(data []byte) map[string]*directionDef {
	var file directionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		panic(fmt.Sprintf("recommend: embedded direction catalog is broken: %v", err))
	}

	catalog := make(map[string]*directionDef, len(file.Directions))
	for _, def := range file.Directions {
		if def.ID == "" {
			panic("recommend: direction with empty id")
		}
		if _, dup := catalog[def.ID]; dup {
			panic(fmt.Sprintf("recommend: duplicate direction id %q", def.ID))
		}
		if len(def.Why) != whyBullets {
			panic(fmt.Sprintf("recommend: direction %q must carry exactly %d why bullets", def.ID, whyBullets))
		}
		catalog[def.ID] = def
	}
	return catalog
}

// HasTrait reports whether the direction with the given id carries the trait.
func HasTrait(id string, trait Trait) bool {
	def, ok := directionCatalog[id]
	if !ok {
		return false
	}
	for _, t := range def.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// direction materializes a catalog entry into the wire shape.
func direction(id string) (interview.Direction, bool) {
	def, ok := directionCatalog[id]
	if !ok {
		return interview.Direction{}, false
	}
	return interview.Direction{
		ID:    def.ID,
		Title: def.Title,
		Why:   append([]string(nil), def.Why...),
		Chips: append([]string(nil), def.Chips...),
	}, true
}
