package resource

// Characteristic describes a Pokémon's highest individual value. It has no name.
type Characteristic struct {
	APIObject
	// The remainder of the highest stat/IV divided by 5.
	GeneModulo int `json:"gene_modulo"`
	// The possible values of the highest stat that would result in a Pokémon recieving this characteristic when divided by 5.
	PossibleValues []int `json:"possible_values"`
	// The descriptions of this characteristic listed in different languages.
	Descriptions []Description `json:"descriptions"`
}

func (Characteristic) Endpoint() string { return "characteristic" }

func init() { Register[Characteristic]() }
