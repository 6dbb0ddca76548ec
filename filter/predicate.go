package filter

import (
	"slices"
	"strings"

	"github.com/datazip-inc/cityfilter/constants"
	"github.com/datazip-inc/cityfilter/types"
)

// Predicate decides whether a row, seen through its derived code, is kept.
type Predicate func(code types.ADCode) bool

// IsPrefecture matches codes ending in "00" but not "0000": prefecture-level
// divisions, excluding whole provinces.
func IsPrefecture(code types.ADCode) bool {
	if code.Int == nil {
		return false
	}
	return *code.Int%100 == 0 && *code.Int%10000 != 0
}

// IsMunicipality matches the four direct-administered municipalities.
func IsMunicipality(code types.ADCode) bool {
	if code.Int == nil {
		return false
	}
	return slices.Contains(constants.MunicipalityCodes, *code.Int)
}

// IsSpecialRegion is a pure prefix test on the code text, so it holds for
// codes that fail to parse.
func IsSpecialRegion(code types.ADCode) bool {
	for _, prefix := range constants.SpecialRegionPrefixes {
		if strings.HasPrefix(code.Str, prefix) {
			return true
		}
	}
	return false
}

// AnyOf is true when at least one of preds is.
func AnyOf(preds ...Predicate) Predicate {
	return func(code types.ADCode) bool {
		for _, pred := range preds {
			if pred(code) {
				return true
			}
		}
		return false
	}
}

// Selection keeps prefectures, municipalities and special regions.
var Selection = AnyOf(IsPrefecture, IsMunicipality, IsSpecialRegion)
