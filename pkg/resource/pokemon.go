package resource

// Pokemon is a single creature form as it appears in the games.
type Pokemon struct {
	NamedAPIObject
	// The base experience gained for defeating this Pokémon.
	BaseExperience int `json:"base_experience"`
	// The height of this Pokémon in decimetres.
	Height int `json:"height"`
	// Set for exactly one Pokémon used as the default for each species.
	IsDefault bool `json:"is_default"`
	// Order for sorting. Almost national order, except families are grouped together.
	Order int `json:"order"`
	// The weight of this Pokémon in hectograms.
	Weight int `json:"weight"`
	// A list of abilities this Pokémon could potentially have.
	Abilities []PokemonAbility `json:"abilities"`
	// The species this Pokémon belongs to.
	Species Link[PokemonSpecies] `json:"species"`
	// A list of details showing types this Pokémon has.
	Types []PokemonType `json:"types"`
}

// PokemonAbility is one ability slot of a Pokémon.
type PokemonAbility struct {
	// Whether or not this is a hidden ability.
	IsHidden bool `json:"is_hidden"`
	// The slot this ability occupies in this Pokémon species.
	Slot int `json:"slot"`
	// The ability the Pokémon may have.
	Ability Link[Ability] `json:"ability"`
}

// PokemonType is one type slot of a Pokémon.
type PokemonType struct {
	// The order the Pokémon's types are listed in.
	Slot int `json:"slot"`
	// The type the referenced Pokémon has.
	Type Link[Type] `json:"type"`
}

func (Pokemon) Endpoint() string { return "pokemon" }

func init() { Register[Pokemon]() }
