package seglap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Recognized settings keys.
const (
	// KeyAllowGapClosing enables tail-to-head linking across frame gaps (bool)
	KeyAllowGapClosing = "allowGapClosing"
	// KeyGapClosingMaxDistance is the hard distance cutoff for gap closing (float64)
	KeyGapClosingMaxDistance = "gapClosingMaxDistance"
	// KeyGapClosingMaxFrameGap is the largest allowed frame difference for gap closing (int)
	KeyGapClosingMaxFrameGap = "gapClosingMaxFrameGap"
	// KeyGapClosingFeaturePenalties maps feature names to penalty weights (map[string]float64, optional)
	KeyGapClosingFeaturePenalties = "gapClosingFeaturePenalties"

	// KeyAllowSplitting enables head-to-middle linking (bool)
	KeyAllowSplitting = "allowSplitting"
	// KeySplittingMaxDistance is the hard distance cutoff for splitting (float64)
	KeySplittingMaxDistance = "splittingMaxDistance"
	// KeySplittingFeaturePenalties maps feature names to penalty weights (map[string]float64, optional)
	KeySplittingFeaturePenalties = "splittingFeaturePenalties"

	// KeyAllowMerging enables tail-to-middle linking (bool)
	KeyAllowMerging = "allowMerging"
	// KeyMergingMaxDistance is the hard distance cutoff for merging (float64)
	KeyMergingMaxDistance = "mergingMaxDistance"
	// KeyMergingFeaturePenalties maps feature names to penalty weights (map[string]float64, optional)
	KeyMergingFeaturePenalties = "mergingFeaturePenalties"

	// KeyAlternativeLinkingCostFactor scales the percentile-derived alternative cost (float64)
	KeyAlternativeLinkingCostFactor = "alternativeLinkingCostFactor"
	// KeyCutoffPercentile is the percentile of candidate costs used for the alternative cost, in (0,1] (float64)
	KeyCutoffPercentile = "cutoffPercentile"
	// KeyBlockingValue is the sentinel cost for disallowed pairings (float64, optional)
	KeyBlockingValue = "blockingValue"
)

// Default values mirrored from the first-stage tracker defaults.
const (
	DefaultMaxDistance                  = 15.0
	DefaultGapClosingMaxFrameGap        = 2
	DefaultAlternativeLinkingCostFactor = 1.05
	DefaultCutoffPercentile             = 0.9
	DefaultBlockingValue                = 1e18
)

// Settings is the configuration map consumed by the segment tracker.
// It is validated once at solve entry and treated as immutable after.
type Settings map[string]any

// DefaultSettings returns a complete settings map with conservative
// defaults: gap closing on, splitting and merging off.
func DefaultSettings() Settings {
	return Settings{
		KeyAllowGapClosing:              true,
		KeyGapClosingMaxDistance:        DefaultMaxDistance,
		KeyGapClosingMaxFrameGap:        DefaultGapClosingMaxFrameGap,
		KeyAllowSplitting:               false,
		KeySplittingMaxDistance:         DefaultMaxDistance,
		KeyAllowMerging:                 false,
		KeyMergingMaxDistance:           DefaultMaxDistance,
		KeyAlternativeLinkingCostFactor: DefaultAlternativeLinkingCostFactor,
		KeyCutoffPercentile:             DefaultCutoffPercentile,
	}
}

var mandatoryKeys = map[string]string{
	KeyAllowGapClosing:              "bool",
	KeyGapClosingMaxDistance:        "float64",
	KeyGapClosingMaxFrameGap:        "int",
	KeyAllowSplitting:               "bool",
	KeySplittingMaxDistance:         "float64",
	KeyAllowMerging:                 "bool",
	KeyMergingMaxDistance:           "float64",
	KeyAlternativeLinkingCostFactor: "float64",
	KeyCutoffPercentile:             "float64",
}

var optionalKeys = map[string]string{
	KeyGapClosingFeaturePenalties: "map[string]float64",
	KeySplittingFeaturePenalties:  "map[string]float64",
	KeyMergingFeaturePenalties:    "map[string]float64",
	KeyBlockingValue:              "float64",
}

// validateSettings checks the settings map for completeness, typing and
// internal consistency. Every violation is collected; the returned error
// aggregates all of them in one message.
func validateSettings(settings Settings) error {
	if settings == nil {
		return errors.New("settings map is nil")
	}

	var violations []string

	keys := make([]string, 0, len(mandatoryKeys))
	for key := range mandatoryKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		violations = append(violations, checkParameter(settings, key, mandatoryKeys[key])...)
	}

	optKeys := make([]string, 0, len(optionalKeys))
	for key := range optionalKeys {
		optKeys = append(optKeys, key)
	}
	sort.Strings(optKeys)
	for _, key := range optKeys {
		if _, present := settings[key]; !present {
			continue
		}
		violations = append(violations, checkParameter(settings, key, optionalKeys[key])...)
	}

	if value, ok := settings[KeyCutoffPercentile].(float64); ok {
		if value <= 0 || value > 1 {
			violations = append(violations, fmt.Sprintf("value %v for key %s is out of range (0,1]", value, KeyCutoffPercentile))
		}
	}

	unexpected := make([]string, 0)
	for key := range settings {
		if _, ok := mandatoryKeys[key]; ok {
			continue
		}
		if _, ok := optionalKeys[key]; ok {
			continue
		}
		unexpected = append(unexpected, key)
	}
	sort.Strings(unexpected)
	for _, key := range unexpected {
		violations = append(violations, fmt.Sprintf("unexpected key: %s", key))
	}

	if len(violations) > 0 {
		return errors.New(strings.Join(violations, "; "))
	}
	return nil
}

// checkParameter verifies one key is present and of the wanted type.
func checkParameter(settings Settings, key, wantType string) []string {
	value, present := settings[key]
	if !present {
		return []string{fmt.Sprintf("missing key: %s", key)}
	}
	switch wantType {
	case "bool":
		if _, ok := value.(bool); !ok {
			return []string{fmt.Sprintf("value for key %s is not a bool: %T", key, value)}
		}
	case "int":
		if _, ok := value.(int); !ok {
			return []string{fmt.Sprintf("value for key %s is not an int: %T", key, value)}
		}
	case "float64":
		if _, ok := value.(float64); !ok {
			return []string{fmt.Sprintf("value for key %s is not a float64: %T", key, value)}
		}
	case "map[string]float64":
		return checkFeaturePenalties(value, key)
	}
	return nil
}

// checkFeaturePenalties verifies a feature-penalty value is a mapping
// from feature name to numeric weight.
func checkFeaturePenalties(value any, key string) []string {
	switch penalties := value.(type) {
	case map[string]float64:
		return nil
	case map[string]any:
		var violations []string
		names := make([]string, 0, len(penalties))
		for name := range penalties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, ok := penalties[name].(float64); !ok {
				violations = append(violations, fmt.Sprintf("penalty %q in key %s is not a float64: %T", name, key, penalties[name]))
			}
		}
		return violations
	default:
		return []string{fmt.Sprintf("value for key %s is not a feature penalty map: %T", key, value)}
	}
}

// featurePenalties extracts a penalty map for the given key, tolerating
// both map[string]float64 and the validated map[string]any form.
func featurePenalties(settings Settings, key string) map[string]float64 {
	value, present := settings[key]
	if !present {
		return nil
	}
	switch penalties := value.(type) {
	case map[string]float64:
		return penalties
	case map[string]any:
		out := make(map[string]float64, len(penalties))
		for name, weight := range penalties {
			if w, ok := weight.(float64); ok {
				out[name] = w
			}
		}
		return out
	default:
		return nil
	}
}
