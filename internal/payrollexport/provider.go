package payrollexport

import "strings"

type Provider string

const (
	ProviderXero       Provider = "xero"
	ProviderSage       Provider = "sage"
	ProviderQuickBooks Provider = "quickbooks"
	ProviderIntuit     Provider = "intuit"
	ProviderCSV        Provider = "csv"
)

// Providers lists every recognised destination.
var Providers = []Provider{ProviderXero, ProviderSage, ProviderQuickBooks, ProviderIntuit, ProviderCSV}

// ParseProvider normalises a provider name. Anything unrecognised resolves to
// ProviderCSV with known=false; callers that must reject unknown values check
// the flag, everyone else gets the generic schema.
func ParseProvider(v string) (p Provider, known bool) {
	p = Provider(strings.ToLower(strings.TrimSpace(v)))
	for _, candidate := range Providers {
		if p == candidate {
			return p, true
		}
	}
	return ProviderCSV, false
}

func (p Provider) String() string {
	return string(p)
}
