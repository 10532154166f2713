package verify

import "strings"

// Static travel-domain reference data consulted by the concrete rules.
// All country identifiers are ISO 3166-1 alpha-2 codes. The tables are
// read-only after init; rules never mutate them.

// SchengenCountries is the Schengen area as of 2025 (29 members).
var SchengenCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "CH": true, "CZ": true, "DE": true,
	"DK": true, "EE": true, "ES": true, "FI": true, "FR": true, "GR": true,
	"HR": true, "HU": true, "IS": true, "IT": true, "LI": true, "LT": true,
	"LU": true, "LV": true, "MT": true, "NL": true, "NO": true, "PL": true,
	"PT": true, "RO": true, "SE": true, "SI": true, "SK": true,
}

// euEEACountries covers EU members plus Iceland, Liechtenstein, and Norway.
// Travelers with these nationalities do not need Schengen travel insurance.
var euEEACountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "CY": true, "CZ": true, "DE": true,
	"DK": true, "EE": true, "ES": true, "FI": true, "FR": true, "GR": true,
	"HR": true, "HU": true, "IE": true, "IS": true, "IT": true, "LI": true,
	"LT": true, "LU": true, "LV": true, "MT": true, "NL": true, "NO": true,
	"PL": true, "PT": true, "RO": true, "SE": true, "SI": true, "SK": true,
}

// yellowFeverEndemic lists countries with yellow fever transmission risk
// where vaccination is recommended for all travelers.
var yellowFeverEndemic = map[string]bool{
	"AO": true, "AR": true, "BF": true, "BI": true, "BJ": true, "BO": true,
	"BR": true, "CD": true, "CF": true, "CG": true, "CI": true, "CM": true,
	"CO": true, "EC": true, "ET": true, "GA": true, "GF": true, "GH": true,
	"GM": true, "GN": true, "GQ": true, "GW": true, "GY": true, "KE": true,
	"LR": true, "ML": true, "MR": true, "NE": true, "NG": true, "PA": true,
	"PE": true, "PY": true, "SD": true, "SL": true, "SN": true, "SR": true,
	"SS": true, "TD": true, "TG": true, "TT": true, "UG": true, "VE": true,
}

// yellowFeverCertificateRequired is the stricter subset that demands proof
// of vaccination at entry. Missing the certificate blocks entry outright.
var yellowFeverCertificateRequired = map[string]bool{
	"AO": true, "BF": true, "BI": true, "CD": true, "CF": true, "CG": true,
	"CI": true, "CM": true, "GA": true, "GF": true, "GH": true, "GN": true,
	"GW": true, "LR": true, "ML": true, "NE": true, "SL": true, "SS": true,
	"TG": true, "UG": true,
}

// visaWaiverCountries are the nationalities eligible for the US Visa Waiver
// Program, which requires an approved ESTA before boarding.
var visaWaiverCountries = map[string]bool{
	"AD": true, "AT": true, "AU": true, "BE": true, "BN": true, "CH": true,
	"CL": true, "CZ": true, "DE": true, "DK": true, "EE": true, "ES": true,
	"FI": true, "FR": true, "GB": true, "GR": true, "HR": true, "HU": true,
	"IE": true, "IL": true, "IS": true, "IT": true, "JP": true, "KR": true,
	"LI": true, "LT": true, "LU": true, "LV": true, "MC": true, "MT": true,
	"NL": true, "NO": true, "NZ": true, "PL": true, "PT": true, "QA": true,
	"SE": true, "SG": true, "SI": true, "SK": true, "SM": true, "TW": true,
}

// sixMonthValidity lists countries that require a passport valid for at
// least six months beyond the stay. Schengen destinations are handled
// separately (the area as a whole is treated as six months).
var sixMonthValidity = map[string]bool{
	"AE": true, "BR": true, "CN": true, "EC": true, "EG": true, "ID": true,
	"IN": true, "KE": true, "MY": true, "PH": true, "SG": true, "TH": true,
	"TR": true, "TZ": true, "VN": true,
}

// threeMonthValidity lists countries that require three months of validity
// beyond the planned departure.
var threeMonthValidity = map[string]bool{
	"JO": true, "LB": true, "MD": true, "NZ": true, "PA": true, "SA": true,
}

// requiredPassportValidityMonths returns the months of passport validity a
// destination demands beyond the trip end: 0, 3, or 6. Schengen forces 6.
func requiredPassportValidityMonths(countryCode string) int {
	switch {
	case SchengenCountries[countryCode], sixMonthValidity[countryCode]:
		return 6
	case threeMonthValidity[countryCode]:
		return 3
	default:
		return 0
	}
}

// highAltitudeCities maps well-known destinations above roughly 2,500 m.
// Matching is by lowercased city name because trips store free-text names.
var highAltitudeCities = map[string]bool{
	"addis ababa": true, "arequipa": true, "bogota": true, "bogotá": true,
	"cusco": true, "el alto": true, "huaraz": true, "la paz": true,
	"leh": true, "lhasa": true, "potosi": true, "potosí": true,
	"puno": true, "quito": true, "sucre": true, "uyuni": true,
}

// highAltitudeCountries flags countries where most itineraries reach high
// altitude regardless of the named city.
var highAltitudeCountries = map[string]bool{
	"BO": true, "BT": true, "NP": true,
}

func highAltitude(cityName, countryCode string) bool {
	return highAltitudeCities[strings.ToLower(strings.TrimSpace(cityName))] ||
		highAltitudeCountries[countryCode]
}
