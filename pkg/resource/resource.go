package resource

// Kind is implemented by every resource type. Endpoint returns the collection
// path segment, e.g. "pokemon". Implementations use a value receiver so the
// path is available from the zero value.
type Kind interface {
	Endpoint() string
}

// NamedKind is a Kind that can also be looked up by name.
type NamedKind interface {
	Kind
	ResourceName() string
}

// APIObject is the base of every resource.
type APIObject struct {
	// The identifier for this resource.
	ID int `json:"id"`
}

// Identity returns the resource id.
func (o APIObject) Identity() int {
	return o.ID
}

// NamedAPIObject is the base of resources that also carry a unique name.
type NamedAPIObject struct {
	APIObject
	// The name for this resource.
	Name string `json:"name"`
	// The name of this resource listed in different languages.
	Names []Name `json:"names,omitempty"`
}

// ResourceName returns the canonical name of the resource.
func (o NamedAPIObject) ResourceName() string {
	return o.Name
}

// LocalizedName returns the display name for the given language name, or the
// canonical name when no variant exists for it.
func (o NamedAPIObject) LocalizedName(language string) string {
	for _, n := range o.Names {
		if n.Language.Name == language {
			return n.Name
		}
	}
	return o.Name
}

// Name is a localized display name.
type Name struct {
	// The localized name for an API resource in a specific language.
	Name string `json:"name"`
	// The language this name is in.
	Language Link[Language] `json:"language"`
}

// Description is a localized description.
type Description struct {
	// The localized description for an API resource in a specific language.
	Description string `json:"description"`
	// The language this description is in.
	Language Link[Language] `json:"language"`
}
