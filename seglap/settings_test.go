package seglap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	assert.NoError(t, validateSettings(DefaultSettings()))
}

func TestValidateNilSettings(t *testing.T) {
	err := validateSettings(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil")
}

func TestValidateMissingKeyIsNamed(t *testing.T) {
	settings := DefaultSettings()
	delete(settings, KeyAllowMerging)

	err := validateSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing key: "+KeyAllowMerging)
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	settings := DefaultSettings()
	delete(settings, KeyAllowGapClosing)
	settings[KeySplittingMaxDistance] = "far"
	settings["typo"] = true

	err := validateSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing key: "+KeyAllowGapClosing)
	assert.Contains(t, err.Error(), KeySplittingMaxDistance)
	assert.Contains(t, err.Error(), "unexpected key: typo")
}

func TestValidateWrongTypes(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value any
	}{
		{name: "bool as int", key: KeyAllowGapClosing, value: 1},
		{name: "float as int", key: KeyGapClosingMaxDistance, value: 15},
		{name: "int as float", key: KeyGapClosingMaxFrameGap, value: 2.0},
		{name: "factor as string", key: KeyAlternativeLinkingCostFactor, value: "1.05"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultSettings()
			settings[tc.key] = tc.value
			err := validateSettings(settings)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestValidateCutoffPercentileRange(t *testing.T) {
	for _, bad := range []float64{0, -0.1, 1.5} {
		settings := DefaultSettings()
		settings[KeyCutoffPercentile] = bad
		err := validateSettings(settings)
		require.Error(t, err, "percentile %v must be rejected", bad)
		assert.Contains(t, err.Error(), KeyCutoffPercentile)
	}
	settings := DefaultSettings()
	settings[KeyCutoffPercentile] = 1.0
	assert.NoError(t, validateSettings(settings))
}

func TestValidateFeaturePenalties(t *testing.T) {
	settings := DefaultSettings()
	settings[KeyGapClosingFeaturePenalties] = map[string]float64{"intensity": 1.5}
	assert.NoError(t, validateSettings(settings))

	settings[KeyGapClosingFeaturePenalties] = map[string]any{"intensity": 1.5, "radius": "heavy"}
	err := validateSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radius")

	settings[KeyGapClosingFeaturePenalties] = []string{"intensity"}
	err = validateSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyGapClosingFeaturePenalties)
}

func TestValidateOptionalBlockingValue(t *testing.T) {
	settings := DefaultSettings()
	settings[KeyBlockingValue] = DefaultBlockingValue
	assert.NoError(t, validateSettings(settings))

	settings[KeyBlockingValue] = "huge"
	err := validateSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyBlockingValue)
}
