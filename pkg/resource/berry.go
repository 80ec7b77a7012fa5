package resource

// Berry is a small fruit that can be held or fed to Pokémon.
type Berry struct {
	NamedAPIObject
	// Time it takes the tree to grow one stage, in hours.
	GrowthTime int `json:"growth_time"`
	// The maximum number of these berries that can grow on one tree.
	MaxHarvest int `json:"max_harvest"`
	// The power of the move "Natural Gift" when used with this Berry.
	NaturalGiftPower int `json:"natural_gift_power"`
	// The size of this Berry, in millimeters.
	Size int `json:"size"`
	// The smoothness of this Berry, used in making Pokéblocks or Poffins.
	Smoothness int `json:"smoothness"`
	// The speed at which this Berry dries out the soil as it grows.
	SoilDryness int `json:"soil_dryness"`
}

func (Berry) Endpoint() string { return "berry" }

func init() { Register[Berry]() }
