package resource

// EvolutionChain is the family tree of a species. It has no name.
type EvolutionChain struct {
	APIObject
	// The base chain link object.
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of an evolution chain.
type ChainLink struct {
	// Whether or not this link is for a baby Pokémon.
	IsBaby bool `json:"is_baby"`
	// The Pokémon species at this point in the evolution chain.
	Species Link[PokemonSpecies] `json:"species"`
	// A List of chain objects.
	EvolvesTo []ChainLink `json:"evolves_to"`
}

func (EvolutionChain) Endpoint() string { return "evolution-chain" }

func init() { Register[EvolutionChain]() }
