package domain

// Conversion factors between the units users enter and the canonical
// storage units (km for distance, kg for mass, m for elevation).
const (
	kmPerMile   = 1.60934
	kgPerLb     = 0.453592
	metersPerFt = 0.3048
)

// MilesToKm converts a distance in miles to kilometres.
func MilesToKm(miles float64) float64 { return miles * kmPerMile }

// KmToMiles converts a distance in kilometres to miles.
func KmToMiles(km float64) float64 { return km / kmPerMile }

// LbToKg converts a mass in pounds to kilograms.
func LbToKg(lb float64) float64 { return lb * kgPerLb }

// KgToLb converts a mass in kilograms to pounds.
func KgToLb(kg float64) float64 { return kg / kgPerLb }

// FtToM converts an elevation in feet to metres.
func FtToM(ft float64) float64 { return ft * metersPerFt }

// MToFt converts an elevation in metres to feet.
func MToFt(m float64) float64 { return m / metersPerFt }
