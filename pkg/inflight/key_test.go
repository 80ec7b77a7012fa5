package inflight

import (
	"net/url"
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "item by id",
			key:  Key{Endpoint: "pokemon", Identity: "25"},
			want: "pokeapi:pokemon:item=25",
		},
		{
			name: "item by name",
			key:  Key{Endpoint: "pokemon", Identity: "pikachu"},
			want: "pokeapi:pokemon:item=pikachu",
		},
		{
			name: "endpoint with slashes",
			key:  Key{Endpoint: "/language/", Identity: "9"},
			want: "pokeapi:language:item=9",
		},
		{
			name: "page without params",
			key:  Key{Endpoint: "pokemon", Collection: true},
			want: "pokeapi:pokemon:list",
		},
		{
			name: "page params sorted",
			key: Key{
				Endpoint:   "pokemon",
				Collection: true,
				QueryParams: url.Values{
					"offset": []string{"40"},
					"limit":  []string{"20"},
				},
			},
			want: "pokeapi:pokemon:list:limit=20:offset=40",
		},
		{
			name: "identity named list does not collide with a page",
			key:  Key{Endpoint: "pokemon", Identity: "list"},
			want: "pokeapi:pokemon:item=list",
		},
		{
			name: "empty identity is still an item",
			key:  Key{Endpoint: "pokemon"},
			want: "pokeapi:pokemon:item=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.key.String()
			if got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_Determinism(t *testing.T) {
	key := Key{
		Endpoint:   "type",
		Collection: true,
		QueryParams: url.Values{
			"offset": []string{"0"},
			"limit":  []string{"5"},
		},
	}

	first := key.String()
	for i := 0; i < 100; i++ {
		if got := key.String(); got != first {
			t.Fatalf("Key.String() not deterministic: %q vs %q", got, first)
		}
	}
}
