package validator

import (
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type endpoint struct {
	Addr string `validate:"required,hostname_port"`
	Rate int    `validate:"gte=0,lte=100"`
}

func TestInstance(t *testing.T) {
	t.Parallel()

	valid := New()

	require.NoError(t, valid.Instance(&endpoint{Addr: "localhost:80", Rate: 50}))

	err := valid.Instance(&endpoint{Addr: "localhost:80", Rate: 200})
	require.Error(t, err)
	assert.ErrorContains(t, err, "`200` is not a valid lte for Rate")

	err = valid.Instance(&endpoint{Rate: 10})
	require.Error(t, err)
	assert.ErrorContains(t, err, "not a valid required for Addr")
}

func TestInstanceMultipleFailures(t *testing.T) {
	t.Parallel()

	err := New().Instance(&endpoint{Addr: "not a host port", Rate: -1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "hostname_port")
	assert.ErrorContains(t, err, "; ")
	assert.ErrorContains(t, err, "gte")
}

func TestAll(t *testing.T) {
	t.Parallel()

	valid := New()

	require.NoError(t, valid.All([]any{
		&endpoint{Addr: "a:1", Rate: 1},
		&endpoint{Addr: "b:2", Rate: 2},
	}))

	err := valid.All([]any{
		&endpoint{Addr: "a:1", Rate: 1},
		&endpoint{Addr: "b:2", Rate: 999},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "instance 1:")
}

func TestNewWith(t *testing.T) {
	t.Parallel()

	custom := govalidator.New()
	require.NoError(t, custom.RegisterValidation("even", func(fl govalidator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	}))

	type counter struct {
		N int `validate:"even"`
	}

	valid := NewWith(custom)
	require.NoError(t, valid.Instance(&counter{N: 4}))
	require.Error(t, valid.Instance(&counter{N: 3}))
}
