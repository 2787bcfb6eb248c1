// Package pluscode decodes the compact location codes field crews write on
// work orders. It covers the ten-digit grid used in practice, not the full
// Open Location Code standard: short codes are recovered against a small
// table of known job-site localities rather than an arbitrary reference
// point.
package pluscode

import (
	"math"
	"strings"
)

const (
	// Alphabet is the 20-symbol base-20 digit set, in positional order.
	Alphabet  = "23456789CFGHJMPQRVWX"
	Separator = '+'

	latitudeMax  = 90.0
	longitudeMax = 180.0

	// A full code carries 8 digits before the separator. Anything shorter
	// needs a recognized locality to reconstruct the leading grid cells.
	fullPrefixLen = 8

	// Decoding stops after 10 digits (~14 m cells).
	maxDigits = 10
)

// pairResolutions holds the degree width of each lat/lon digit pair.
var pairResolutions = [5]float64{20.0, 1.0, 0.05, 0.0025, 0.000125}

// referencePoint anchors short codes to a known locality. Order matters:
// the first substring match in the input wins.
type referencePoint struct {
	name string
	lat  float64
	lon  float64
}

var referencePoints = []referencePoint{
	{"lake charles", 30.2266, -93.2174},
	{"sulphur", 30.2366, -93.3774},
	{"louisiana", 30.9843, -91.9623},
}

// CodeArea is the bounding rectangle a code decodes to, in degrees.
type CodeArea struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Lat returns the latitude of the area centroid.
func (a CodeArea) Lat() float64 {
	return (a.South + a.North) / 2
}

// Lon returns the longitude of the area centroid.
func (a CodeArea) Lon() float64 {
	return (a.West + a.East) / 2
}

// DecodeError is the only failure the decoder reports.
type DecodeError struct {
	Code   string
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode " + e.Code + ": " + e.Reason
}

// alphabetIndex returns the digit value of c, or -1 for characters outside
// the alphabet.
func alphabetIndex(c byte) int {
	return strings.IndexByte(Alphabet, c)
}

// Decode resolves a location code to its bounding rectangle. The input may
// carry a trailing place name ("5MHH+P8G Lake Charles, Louisiana"); that
// text is matched against the locality table to anchor short codes. A short
// code with no recognized locality cannot be resolved and fails.
func Decode(input string) (*CodeArea, error) {
	original := strings.TrimSpace(input)
	fields := strings.Fields(original)
	if len(fields) == 0 {
		return nil, &DecodeError{Code: input, Reason: "empty code"}
	}
	code := strings.ToUpper(fields[0])

	var ref *referencePoint
	lower := strings.ToLower(original)
	for i := range referencePoints {
		if strings.Contains(lower, referencePoints[i].name) {
			ref = &referencePoints[i]
			break
		}
	}

	prefix := code
	if i := strings.IndexByte(code, Separator); i >= 0 {
		prefix = code[:i]
	}
	if len(prefix) < fullPrefixLen {
		if ref == nil {
			return nil, &DecodeError{Code: code,
				Reason: "cannot resolve short code without a recognized reference location"}
		}
		code = recoverPrefix(ref.lat, ref.lon) + code
	}

	digits := strings.ReplaceAll(code, string(Separator), "")
	for i := 0; i < len(digits); i++ {
		if alphabetIndex(digits[i]) < 0 {
			return nil, &DecodeError{Code: code,
				Reason: "invalid character " + string(digits[i]) + " in code"}
		}
	}
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}

	south, west := 0.0, 0.0
	latRes, lonRes := pairResolutions[0], pairResolutions[0]
	for i := 0; i+1 < len(digits); i += 2 {
		latRes = pairResolutions[i/2]
		lonRes = pairResolutions[i/2]
		south += float64(alphabetIndex(digits[i])) * latRes
		west += float64(alphabetIndex(digits[i+1])) * lonRes
	}

	south -= latitudeMax
	west -= longitudeMax

	return &CodeArea{
		South: south,
		West:  west,
		North: south + latRes,
		East:  west + lonRes,
	}, nil
}

// recoverPrefix rebuilds the four leading grid digits of a short code from a
// reference point. This is the field heuristic the crews rely on; it is only
// as good as the locality table and makes no attempt at the standard's
// nearest-cell search.
func recoverPrefix(refLat, refLon float64) string {
	latVal := refLat + latitudeMax
	lonVal := refLon + longitudeMax

	return string([]byte{
		Alphabet[int(math.Floor(latVal/20))],
		Alphabet[int(math.Floor(lonVal/20))],
		Alphabet[int(math.Floor(math.Mod(latVal, 20)))],
		Alphabet[int(math.Floor(math.Mod(lonVal, 20)))],
	})
}
