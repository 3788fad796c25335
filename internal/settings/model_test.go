package settings_test

import (
	"testing"

	"lsu-service/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterTypedValue(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		p := settings.Parameter{Value: "École du Cap", ValueType: settings.TypeString}
		v, err := p.TypedValue()
		require.NoError(t, err)
		assert.Equal(t, "École du Cap", v)
	})

	t.Run("Int", func(t *testing.T) {
		p := settings.Parameter{Value: "42", ValueType: settings.TypeInt}
		v, err := p.TypedValue()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("Bool", func(t *testing.T) {
		p := settings.Parameter{Value: "true", ValueType: settings.TypeBool}
		v, err := p.TypedValue()
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("JSON", func(t *testing.T) {
		p := settings.Parameter{Value: `{"periods": 4}`, ValueType: settings.TypeJSON}
		v, err := p.TypedValue()
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"periods": float64(4)}, v)
	})

	t.Run("MalformedInt", func(t *testing.T) {
		p := settings.Parameter{Value: "abc", ValueType: settings.TypeInt}
		_, err := p.TypedValue()
		require.Error(t, err)
	})
}

func TestParameterValidateValue(t *testing.T) {
	intParam := settings.Parameter{Key: "max_comments", ValueType: settings.TypeInt}
	require.NoError(t, intParam.ValidateValue("10"))
	require.Error(t, intParam.ValidateValue("dix"))

	boolParam := settings.Parameter{Key: "generation_enabled", ValueType: settings.TypeBool}
	require.NoError(t, boolParam.ValidateValue("false"))
	require.Error(t, boolParam.ValidateValue("oui"))

	jsonParam := settings.Parameter{Key: "extra", ValueType: settings.TypeJSON}
	require.NoError(t, jsonParam.ValidateValue(`["a", "b"]`))
	require.Error(t, jsonParam.ValidateValue("{broken"))

	stringParam := settings.Parameter{Key: "school_name", ValueType: settings.TypeString}
	require.NoError(t, stringParam.ValidateValue("anything goes"))
}

func TestDefaults(t *testing.T) {
	defaults := settings.Defaults()
	require.NotEmpty(t, defaults)

	keys := make(map[string]bool)
	for _, p := range defaults {
		assert.False(t, keys[p.Key], "duplicate key %s", p.Key)
		keys[p.Key] = true
		assert.NoError(t, p.ValidateValue(p.Value))
	}
	assert.True(t, keys["current_period"])
	assert.True(t, keys["generation_enabled"])
}
