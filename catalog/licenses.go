package catalog

// License is one entry of the platform's fixed license table.
type License struct {
	Name string
	URL  string
}

// Licenses maps the platform's opaque license ids to their canonical
// description URLs. Static reference data; consumers depend on the exact ids.
var Licenses = map[string]License{
	"cc_by":       {Name: "CC BY", URL: "https://creativecommons.org/licenses/by/3.0/"},
	"cc_by_sa":    {Name: "CC BY-SA", URL: "https://creativecommons.org/licenses/by-sa/3.0/"},
	"cc_by_nd":    {Name: "CC BY-ND", URL: "https://creativecommons.org/licenses/by-nd/3.0/"},
	"cc_by_nc":    {Name: "CC BY-NC", URL: "https://creativecommons.org/licenses/by-nc/3.0/"},
	"cc_by_nc_sa": {Name: "CC BY-NC-SA", URL: "https://creativecommons.org/licenses/by-nc-sa/3.0/"},
	"cc_by_nc_nd": {Name: "CC BY-NC-ND", URL: "https://creativecommons.org/licenses/by-nc-nd/3.0/"},
	"cc0":         {Name: "CC0", URL: "https://creativecommons.org/publicdomain/zero/1.0/"},
	"odbl":        {Name: "ODbL", URL: "https://opendatacommons.org/licenses/odbl/1-0/"},
	"pddl":        {Name: "PDDL", URL: "https://opendatacommons.org/licenses/pddl/1-0/"},
	"fr_lo":       {Name: "Licence Ouverte", URL: "https://www.etalab.gouv.fr/licence-ouverte-open-licence"},
	"ogl":         {Name: "OGL", URL: "https://www.nationalarchives.gov.uk/doc/open-government-licence/version/3/"},
	"5sylls5":     {Name: "CC BY 4.0", URL: "https://creativecommons.org/licenses/by/4.0/"},
}

// LicenseByID looks up a license id in the fixed table.
func LicenseByID(id string) (License, bool) {
	license, ok := Licenses[id]
	return license, ok
}

// IsValidLicenseID reports whether id is one of the platform's license ids.
func IsValidLicenseID(id string) bool {
	_, ok := Licenses[id]
	return ok
}
