package resource

// PokemonSpecies groups the forms of one creature.
type PokemonSpecies struct {
	NamedAPIObject
	// The order in which species should be sorted.
	Order int `json:"order"`
	// The chance of this Pokémon being female, in eighths; or -1 for genderless.
	GenderRate int `json:"gender_rate"`
	// The base capture rate; up to 255.
	CaptureRate int `json:"capture_rate"`
	// The happiness when caught by a normal Pokéball; up to 255.
	BaseHappiness int `json:"base_happiness"`
	// Whether or not this is a baby Pokémon.
	IsBaby bool `json:"is_baby"`
	// Whether or not this is a legendary Pokémon.
	IsLegendary bool `json:"is_legendary"`
	// Whether or not this is a mythical Pokémon.
	IsMythical bool `json:"is_mythical"`
	// The evolution chain this Pokémon species is a member of.
	EvolutionChain Link[EvolutionChain] `json:"evolution_chain"`
	// The generation this Pokémon species was introduced in.
	Generation Link[Generation] `json:"generation"`
	// A list of the Pokémon that exist within this Pokémon species.
	Varieties []PokemonSpeciesVariety `json:"varieties"`
}

// PokemonSpeciesVariety is one Pokémon belonging to a species.
type PokemonSpeciesVariety struct {
	// Whether this variety is the default variety.
	IsDefault bool `json:"is_default"`
	// The Pokémon variety.
	Pokemon Link[Pokemon] `json:"pokemon"`
}

func (PokemonSpecies) Endpoint() string { return "pokemon-species" }

func init() { Register[PokemonSpecies]() }
