package resource

// Type is an elemental type such as fire or water.
type Type struct {
	NamedAPIObject
	// The generation this type was introduced in.
	Generation Link[Generation] `json:"generation"`
	// A list of details of Pokémon that have this type.
	Pokemon []TypePokemon `json:"pokemon"`
}

// TypePokemon is a Pokémon that has a given type.
type TypePokemon struct {
	// The order the Pokémon's types are listed in.
	Slot int `json:"slot"`
	// The Pokémon that has the referenced type.
	Pokemon Link[Pokemon] `json:"pokemon"`
}

func (Type) Endpoint() string { return "type" }

func init() { Register[Type]() }
