package safex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryOrDefault_ReturnsValue(t *testing.T) {
	v, err := TryOrDefault(func() (int, error) { return 7, nil }, -1)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestTryOrDefault_ErrorYieldsDefault(t *testing.T) {
	boom := errors.New("boom")
	v, err := TryOrDefault(func() (int, error) { return 7, boom }, -1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, -1, v)
}

func TestTryOrDefault_PanicYieldsDefault(t *testing.T) {
	v, err := TryOrDefault(func() ([]string, error) { panic("quota") }, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
	assert.Equal(t, []string{}, v)
}

func TestSucceeded(t *testing.T) {
	ok, err := Succeeded(func() error { return nil })
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = Succeeded(func() error { return errors.New("nope") })
	assert.False(t, ok)
	assert.Error(t, err)

	ok, err = Succeeded(func() error { panic(errors.New("bad")) })
	assert.False(t, ok)
	assert.Error(t, err)
}
