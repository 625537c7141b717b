package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structargs/structargs/internal/errors"
)

// settingsRaw returns a complete raw-values map for the Settings record, in
// the shape the parsing engine produces in single mode.
func settingsRaw() map[string]any {
	return map[string]any{
		"host":    "example.com",
		"port":    8080,
		"rate":    2.5,
		"debug":   true,
		"verbose": false,
		"tags":    []any{"a", "b"},
		"color":   "Blue",
	}
}

// settingsRawMultiple wraps every raw value into a single-element list, the
// broadcastable shape of multiple mode.
func settingsRawMultiple() map[string]any {
	raw := make(map[string]any)
	for name, value := range settingsRaw() {
		raw[name] = []any{value}
	}

	return raw
}

func TestConstructorArgumentsSingle(t *testing.T) {
	t.Parallel()

	rec := NewSettingsRecord(t)

	args, err := rec.ConstructorArguments(settingsRaw(), 1)
	require.NoError(t, err)
	require.Len(t, args, 1)

	assert.Equal(t, "example.com", args[0]["Host"])
	assert.Equal(t, 8080, args[0]["Port"])
	assert.Equal(t, []any{"a", "b"}, args[0]["Tags"])
	assert.NotContains(t, args[0], "Ignored")
}

func TestConstructorArgumentsMultiple(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name string

		port      any
		instances int
		expPorts  []any
		expErr    error
	}{
		{
			name:      "broadcast single value",
			port:      []any{7},
			instances: 3,
			expPorts:  []any{7, 7, 7},
		},
		{
			name:      "distribute positionally",
			port:      []any{1, 2, 3},
			instances: 3,
			expPorts:  []any{1, 2, 3},
		},
		{
			name:      "inconsistent length",
			port:      []any{1, 2},
			instances: 3,
			expErr: &InconsistentArgumentsError{
				Field:     "port",
				Count:     2,
				Instances: 3,
			},
		},
	}
	for _, test := range tt {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			rec := NewSettingsRecord(t)
			rec.SetMultiple(true)

			raw := settingsRawMultiple()
			raw["port"] = test.port

			args, err := rec.ConstructorArguments(raw, test.instances)
			if test.expErr != nil {
				require.Error(t, err)
				var inconsistent *InconsistentArgumentsError
				require.ErrorAs(t, err, &inconsistent)
				assert.Equal(t, test.expErr, inconsistent)

				return
			}

			require.NoError(t, err)
			require.Len(t, args, test.instances)
			for i, exp := range test.expPorts {
				assert.Equal(t, exp, args[i]["Port"])
				// The other fields broadcast their single value.
				assert.Equal(t, "example.com", args[i]["Host"])
			}
		})
	}
}

func TestConstructorArgumentsContracts(t *testing.T) {
	t.Parallel()

	rec := NewSettingsRecord(t)

	// Single mode must produce exactly one instance.
	_, err := rec.ConstructorArguments(settingsRaw(), 3)
	require.ErrorIs(t, err, errors.ErrContract)

	// Multiple mode must produce more than one.
	multi := NewSettingsRecord(t)
	multi.SetMultiple(true)
	_, err = multi.ConstructorArguments(settingsRawMultiple(), 1)
	require.ErrorIs(t, err, errors.ErrContract)

	// A missing argument key is a defect of the composing layer.
	raw := settingsRaw()
	delete(raw, "port")
	_, err = rec.ConstructorArguments(raw, 1)
	require.ErrorIs(t, err, errors.ErrContract)

	// Multiple mode expects every raw value to be a list.
	multiRaw := settingsRawMultiple()
	multiRaw["port"] = 7
	_, err = multi.ConstructorArguments(multiRaw, 2)
	require.ErrorIs(t, err, errors.ErrContract)
}

func TestInstantiate(t *testing.T) {
	t.Parallel()

	rec := NewSettingsRecord(t)

	args, err := rec.ConstructorArguments(settingsRaw(), 1)
	require.NoError(t, err)

	instance, err := rec.Instantiate(args[0])
	require.NoError(t, err)

	settings, ok := instance.(*Settings)
	require.True(t, ok)
	assert.Equal(t, "example.com", settings.Host)
	assert.Equal(t, 8080, settings.Port)
	assert.Equal(t, 2.5, settings.Rate)
	assert.True(t, settings.Debug)
	assert.False(t, settings.Verbose)
	assert.Equal(t, []string{"a", "b"}, settings.Tags)
	assert.Equal(t, Blue, settings.Color)
}

func TestInstantiateEnumRoundTrip(t *testing.T) {
	t.Parallel()

	rec := NewSettingsRecord(t)

	// The member name string the engine produced maps back to the member.
	raw := settingsRaw()
	raw["color"] = "Green"
	args, err := rec.ConstructorArguments(raw, 1)
	require.NoError(t, err)

	instance, err := rec.Instantiate(args[0])
	require.NoError(t, err)
	assert.Equal(t, Green, instance.(*Settings).Color)

	// An unknown name is rejected.
	args[0]["Color"] = "Purple"
	_, err = rec.Instantiate(args[0])
	require.ErrorIs(t, err, errors.ErrInvalidChoice)

	// A member that never went through text passes through unchanged.
	args[0]["Color"] = Red
	instance, err = rec.Instantiate(args[0])
	require.NoError(t, err)
	assert.Equal(t, Red, instance.(*Settings).Color)
}

func TestInstantiateBoolToggle(t *testing.T) {
	t.Parallel()

	rec := NewSettingsRecord(t)
	args, err := rec.ConstructorArguments(settingsRaw(), 1)
	require.NoError(t, err)

	// Flag present without a token: the declared default is negated.
	args[0]["Debug"] = nil
	instance, err := rec.Instantiate(args[0])
	require.NoError(t, err)
	assert.True(t, instance.(*Settings).Debug)

	args[0]["Verbose"] = nil
	instance, err = rec.Instantiate(args[0])
	require.NoError(t, err)
	assert.True(t, instance.(*Settings).Verbose)

	// A parsed boolean passes through unchanged.
	args[0]["Debug"] = false
	instance, err = rec.Instantiate(args[0])
	require.NoError(t, err)
	assert.False(t, instance.(*Settings).Debug)

	// Anything else violates the engine contract.
	args[0]["Debug"] = "yes"
	_, err = rec.Instantiate(args[0])
	require.ErrorIs(t, err, errors.ErrContract)
}

func TestInstantiateRecordListContract(t *testing.T) {
	t.Parallel()

	type Item struct{ Value int }
	cfg := struct {
		Items []Item
	}{}

	rec, err := New(&cfg)
	require.NoError(t, err)

	_, err = rec.ConstructorArguments(map[string]any{}, 1)
	require.ErrorIs(t, err, errors.ErrContract)

	_, err = rec.Instantiate(map[string]any{})
	require.ErrorIs(t, err, errors.ErrContract)
}

//
// Nested composition ----------------------------------------------------------------------
//

type Server struct {
	Host string
	Port int
}

type App struct {
	Name   string
	Server Server
}

func TestNestedSpecs(t *testing.T) {
	t.Parallel()

	rec, err := New(&App{Name: "app", Server: Server{Host: "0.0.0.0", Port: 80}})
	require.NoError(t, err)

	specs := rec.AllSpecs()
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"name", "server-host", "server-port"}, names)

	// Child defaults come from the prototype's nested values.
	child := rec.Child("Server")
	require.NotNil(t, child)
	assert.Equal(t, "0.0.0.0", child.Field("Host").Spec().Default)
	assert.Equal(t, 80, child.Field("Port").Spec().Default)
}

func TestNestedBuildAll(t *testing.T) {
	t.Parallel()

	rec, err := New(&App{})
	require.NoError(t, err)

	raw := map[string]any{
		"name":        "tool",
		"server-host": "10.0.0.1",
		"server-port": 9090,
	}
	built, err := rec.BuildAll(raw, 1)
	require.NoError(t, err)
	require.Len(t, built, 1)

	app, ok := built[0].(*App)
	require.True(t, ok)
	assert.Equal(t, "tool", app.Name)
	assert.Equal(t, Server{Host: "10.0.0.1", Port: 9090}, app.Server)
}

func TestNestedBuildAllMultiple(t *testing.T) {
	t.Parallel()

	rec, err := New(&App{})
	require.NoError(t, err)
	rec.SetMultiple(true)

	raw := map[string]any{
		"name":        []any{"alpha", "beta"},
		"server-host": []any{"10.0.0.1"},
		"server-port": []any{1, 2},
	}
	built, err := rec.BuildAll(raw, 2)
	require.NoError(t, err)
	require.Len(t, built, 2)

	first := built[0].(*App)
	second := built[1].(*App)
	assert.Equal(t, "alpha", first.Name)
	assert.Equal(t, "beta", second.Name)
	assert.Equal(t, "10.0.0.1", first.Server.Host, "single host must broadcast")
	assert.Equal(t, "10.0.0.1", second.Server.Host)
	assert.Equal(t, 1, first.Server.Port)
	assert.Equal(t, 2, second.Server.Port)
}

func TestNestedPrefixCascade(t *testing.T) {
	t.Parallel()

	rec, err := New(&App{})
	require.NoError(t, err)

	rec.SetPrefix("app-")
	names := make([]string, 0)
	for _, spec := range rec.AllSpecs() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"app-name", "app-server-host", "app-server-port"}, names)
}

func TestReplace(t *testing.T) {
	t.Parallel()

	app := &App{Name: "tool", Server: Server{Host: "localhost", Port: 80}}
	rec, err := New(app)
	require.NoError(t, err)

	replaced, err := rec.Replace(app, map[string]any{
		"Name":        "renamed",
		"Server.Port": 9090,
	})
	require.NoError(t, err)

	updated := replaced.(*App)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "localhost", updated.Server.Host, "untouched nested fields must be kept")
	assert.Equal(t, 9090, updated.Server.Port)

	// The original instance is left untouched.
	assert.Equal(t, "tool", app.Name)
	assert.Equal(t, 80, app.Server.Port)
}

func TestReplaceWholeChild(t *testing.T) {
	t.Parallel()

	app := &App{Name: "tool", Server: Server{Host: "localhost", Port: 80}}
	rec, err := New(app)
	require.NoError(t, err)

	replaced, err := rec.Replace(app, map[string]any{
		"Server": Server{Host: "10.1.1.1", Port: 443},
	})
	require.NoError(t, err)
	assert.Equal(t, Server{Host: "10.1.1.1", Port: 443}, replaced.(*App).Server)
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, errors.ErrNilObject)

	_, err = New(struct{}{})
	require.ErrorIs(t, err, errors.ErrNotPointerToStruct)

	_, err = New((*Settings)(nil))
	require.ErrorIs(t, err, errors.ErrNilObject)

	value := "something"
	_, err = New(&value)
	require.ErrorIs(t, err, errors.ErrNotPointerToStruct)
}
