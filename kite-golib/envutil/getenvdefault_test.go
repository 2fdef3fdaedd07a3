package envutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetenvDefault(t *testing.T) {
	const name = "ENVUTIL_TEST_STRING"
	os.Unsetenv(name)
	assert.Equal(t, "fallback", GetenvDefault(name, "fallback"))

	os.Setenv(name, "set")
	defer os.Unsetenv(name)
	assert.Equal(t, "set", GetenvDefault(name, "fallback"))
}

func TestGetenvDefaultInt(t *testing.T) {
	const name = "ENVUTIL_TEST_INT"
	os.Unsetenv(name)
	defer os.Unsetenv(name)

	v, err := GetenvDefaultInt(name, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	os.Setenv(name, "42")
	v, err = GetenvDefaultInt(name, 7)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	os.Setenv(name, "forty-two")
	v, err = GetenvDefaultInt(name, 7)
	require.Error(t, err)
	assert.Equal(t, 7, v)
}
