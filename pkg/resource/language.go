package resource

// Language is a language resources can be translated into.
type Language struct {
	NamedAPIObject
	// Whether or not the games are published in this language.
	Official bool `json:"official"`
	// The two-letter code of the country where this language is spoken. Note that it is not unique.
	Iso639 string `json:"iso639"`
	// The two-letter code of the language. Note that it is not unique.
	Iso3166 string `json:"iso3166"`
}

func (Language) Endpoint() string { return "language" }

func init() { Register[Language]() }
