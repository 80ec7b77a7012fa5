package resource

// Ability is a passive effect a Pokémon may have.
type Ability struct {
	NamedAPIObject
	// Whether or not this ability originated in the main series of the video games.
	IsMainSeries bool `json:"is_main_series"`
	// The generation this ability originated in.
	Generation Link[Generation] `json:"generation"`
	// A list of Pokémon that could potentially have this ability.
	Pokemon []AbilityPokemon `json:"pokemon"`
}

// AbilityPokemon is a Pokémon that may have a given ability.
type AbilityPokemon struct {
	// Whether or not this a hidden ability for the referenced Pokémon.
	IsHidden bool `json:"is_hidden"`
	// Pokémon have 3 ability 'slots' which hold references to possible abilities they could have.
	Slot int `json:"slot"`
	// The Pokémon this ability could belong to.
	Pokemon Link[Pokemon] `json:"pokemon"`
}

func (Ability) Endpoint() string { return "ability" }

func init() { Register[Ability]() }
