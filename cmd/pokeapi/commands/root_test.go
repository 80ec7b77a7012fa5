package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/Sternrassler/pokeapi-client/internal/testutil"
	"github.com/Sternrassler/pokeapi-client/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the root command against mock and returns stdout.
func execute(t *testing.T, mock *testutil.MockPokeAPI, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	base := []string{"--log-level", "disabled", "--retry-attempts", "1"}
	if mock != nil {
		base = append(base, "--base-url", mock.BaseURL())
	}
	cmd.SetArgs(append(base, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func newMock(t *testing.T) *testutil.MockPokeAPI {
	t.Helper()
	mock := testutil.NewMockPokeAPI()
	t.Cleanup(mock.Close)
	return mock
}

const pikachuJSON = `{"id": 25, "name": "pikachu", "height": 4, "weight": 60,
	"types": [{"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}]}`

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.2.3")
	assert.Equal(t, "pokeapi", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)
	assert.True(t, cmd.SilenceUsage)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "resolve")
	assert.Contains(t, commandNames, "kinds")

	flags := []string{
		"config", "base-url", "user-agent", "timeout", "output", "log-level",
		"max-concurrency", "retry-attempts", "page-size", "stats",
	}
	for _, flagName := range flags {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	output := cmd.PersistentFlags().Lookup("output")
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "table", output.DefValue)
}

func TestListCommandFlags(t *testing.T) {
	cmd := NewRootCommand("test")
	list, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)

	assert.Equal(t, "list KIND", list.Use)
	assert.NotNil(t, list.RunE)
	for _, flagName := range []string{"limit", "offset", "all"} {
		assert.NotNil(t, list.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
	assert.Equal(t, "false", list.Flags().Lookup("all").DefValue)
}

func TestGetCommand_ByKindAndID(t *testing.T) {
	mock := newMock(t)
	mock.SetResponse("pokemon/25/", testutil.NewJSONResponse(pikachuJSON))

	out, err := execute(t, mock, "get", "pokemon", "25", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "pikachu", got["name"])
	assert.EqualValues(t, 25, got["id"])
	assert.Equal(t, 1, mock.GetPathCount("pokemon/25/"))
}

func TestGetCommand_ByName(t *testing.T) {
	mock := newMock(t)
	mock.SetResponse("pokemon/mr-mime/", testutil.NewJSONResponse(`{"id": 122, "name": "mr-mime"}`))

	out, err := execute(t, mock, "get", "pokemon", "Mr. Mime", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"mr-mime"`)
}

func TestGetCommand_ByURL(t *testing.T) {
	mock := newMock(t)
	mock.SetResponse("pokemon/25/", testutil.NewJSONResponse(pikachuJSON))

	out, err := execute(t, mock, "get", mock.ResourceURL("pokemon/25/"))
	require.NoError(t, err)

	assert.Contains(t, out, "pikachu")
	assert.Contains(t, out, "electric")
}

func TestGetCommand_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.SetResponse("pokemon/9999/", testutil.NewNotFoundResponse())

	_, err := execute(t, mock, "get", "pokemon", "9999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrNotFound))
}

func TestGetCommand_UnknownKind(t *testing.T) {
	mock := newMock(t)

	_, err := execute(t, mock, "get", "digimon", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrConfiguration))
	assert.Equal(t, 0, mock.GetRequestCount())
}

func TestListCommand_Page(t *testing.T) {
	mock := newMock(t)
	mock.SetCollection("berry", []string{"cheri", "chesto", "pecha", "rawst", "aspear"})

	out, err := execute(t, mock, "list", "berry", "--limit", "2", "--offset", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "chesto")
	assert.Contains(t, out, "pecha")
	assert.NotContains(t, out, "cheri")
	assert.NotContains(t, out, "rawst")
	assert.Contains(t, out, "Showing 2 of 5, next offset 3")
}

func TestListCommand_All(t *testing.T) {
	mock := newMock(t)
	names := make([]string, 7)
	for i := range names {
		names[i] = fmt.Sprintf("berry-%d", i+1)
	}
	mock.SetCollection("berry", names)

	out, err := execute(t, mock, "--page-size", "3", "list", "berry", "--all", "-o", "json")
	require.NoError(t, err)

	var links []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	require.Len(t, links, 7)
	for i, link := range links {
		assert.Equal(t, names[i], link.Name)
	}
}

func TestListCommand_AllExcludesLimit(t *testing.T) {
	mock := newMock(t)

	_, err := execute(t, mock, "list", "berry", "--all", "--limit", "5")
	require.Error(t, err)
	assert.Equal(t, 0, mock.GetRequestCount())
}

func TestResolveCommand_YAML(t *testing.T) {
	mock := newMock(t)
	mock.SetResponse("type/13/", testutil.NewJSONResponse(`{"id": 13, "name": "electric"}`))
	mock.SetResponse("ability/9/", testutil.NewJSONResponse(`{"id": 9, "name": "static", "is_main_series": true}`))

	out, err := execute(t, mock, "resolve",
		mock.ResourceURL("type/13/"),
		mock.ResourceURL("ability/9/"),
		"-o", "yaml",
	)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "electric", got[0]["name"])
	assert.Equal(t, "static", got[1]["name"])
}

func TestResolveCommand_FailsAtomically(t *testing.T) {
	mock := newMock(t)
	mock.SetResponse("type/13/", testutil.NewJSONResponse(`{"id": 13, "name": "electric"}`))
	mock.SetResponse("type/99/", testutil.NewNotFoundResponse())

	out, err := execute(t, mock, "resolve", mock.ResourceURL("type/13/"), mock.ResourceURL("type/99/"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrNotFound))
	assert.Empty(t, out)
}

func TestResolveCommand_RejectsNameLinks(t *testing.T) {
	mock := newMock(t)
	mock.SetResponse("pokemon/pikachu/", testutil.NewJSONResponse(pikachuJSON))

	_, err := execute(t, mock, "resolve", mock.ResourceURL("pokemon/pikachu/"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrUnsupportedNavigation))
	assert.Equal(t, 0, mock.GetRequestCount())
}

func TestKindsCommand(t *testing.T) {
	out, err := execute(t, nil, "kinds", "-o", "json")
	require.NoError(t, err)

	var kinds []kindSummary
	require.NoError(t, json.Unmarshal([]byte(out), &kinds))

	byPath := make(map[string]bool)
	for _, k := range kinds {
		byPath[k.Path] = k.Named
	}
	assert.True(t, byPath["pokemon"])
	assert.True(t, byPath["berry"])
	named, ok := byPath["evolution-chain"]
	assert.True(t, ok)
	assert.False(t, named)
}

func TestKindsCommand_Table(t *testing.T) {
	out, err := execute(t, nil, "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "pokemon-species")
	assert.Contains(t, out, "characteristic")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := execute(t, nil, "kinds", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "xml"`)
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := NewRootCommand("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "kinds"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, nil, "--config", "/nonexistent/pokeapi.yml", "kinds")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "pikachu", "pikachu"},
		{"integer float", float64(25), "25"},
		{"fraction", 0.5, "0.5"},
		{"bool", true, "true"},
		{"named object", map[string]any{"name": "electric", "url": "x"}, "electric"},
		{"wrapped named object", map[string]any{"slot": float64(1), "type": map[string]any{"name": "electric"}}, "electric"},
		{"anonymous object", map[string]any{"a": float64(1), "b": float64(2)}, "{2 fields}"},
		{"list", []any{"a", "b"}, "a, b"},
		{"long list", []any{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, "1, 2, 3, 4, 5, 6, 7, 8, (+2 more)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.in))
		})
	}
}
