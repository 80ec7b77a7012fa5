package resource

// Generation is a grouping of games and the content introduced with them.
type Generation struct {
	NamedAPIObject
	// A list of abilities that were introduced in this generation.
	Abilities []Link[Ability] `json:"abilities"`
	// A list of Pokémon species that were introduced in this generation.
	PokemonSpecies []Link[PokemonSpecies] `json:"pokemon_species"`
	// A list of types that were introduced in this generation.
	Types []Link[Type] `json:"types"`
}

func (Generation) Endpoint() string { return "generation" }

func init() { Register[Generation]() }
