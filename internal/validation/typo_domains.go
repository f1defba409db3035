package validation

// typoDomains maps commonly misspelled email domains to their intended
// spelling. Matching is exact on the lowercased domain; anything not listed
// here never triggers the typo check.
var typoDomains = map[string]string{
	// gmail.com
	"gamil.com":     "gmail.com",
	"gmial.com":     "gmail.com",
	"gmali.com":     "gmail.com",
	"gmal.com":      "gmail.com",
	"gmai.com":      "gmail.com",
	"gnail.com":     "gmail.com",
	"gmaill.com":    "gmail.com",
	"gmails.com":    "gmail.com",
	"gmail.co":      "gmail.com",
	"gmail.cm":      "gmail.com",
	"gmail.con":     "gmail.com",
	"gmail.om":      "gmail.com",
	"gmail.comm":    "gmail.com",
	"gemail.com":    "gmail.com",
	"googlemail.co": "googlemail.com",

	// yahoo.com
	"yaho.com":   "yahoo.com",
	"yahooo.com": "yahoo.com",
	"yhoo.com":   "yahoo.com",
	"yahho.com":  "yahoo.com",
	"yahoo.cm":   "yahoo.com",
	"yahoo.con":  "yahoo.com",
	"yahoo.comm": "yahoo.com",
	"yaoo.com":   "yahoo.com",

	// hotmail.com
	"hotmal.com":   "hotmail.com",
	"hotmial.com":  "hotmail.com",
	"hotmil.com":   "hotmail.com",
	"hotamil.com":  "hotmail.com",
	"hotmai.com":   "hotmail.com",
	"homail.com":   "hotmail.com",
	"hotmaill.com": "hotmail.com",
	"hotmail.co":   "hotmail.com",
	"hotmail.cm":   "hotmail.com",
	"hotmail.con":  "hotmail.com",

	// outlook.com
	"outlok.com":   "outlook.com",
	"outlool.com":  "outlook.com",
	"outook.com":   "outlook.com",
	"outloook.com": "outlook.com",
	"outlook.co":   "outlook.com",
	"outlook.cm":   "outlook.com",
	"outlook.con":  "outlook.com",

	// icloud.com
	"icloud.co":   "icloud.com",
	"icloud.con":  "icloud.com",
	"iclould.com": "icloud.com",
	"icload.com":  "icloud.com",
	"iclod.com":   "icloud.com",

	// aol.com
	"aoll.com": "aol.com",
	"aol.co":   "aol.com",
	"aol.con":  "aol.com",

	// proton
	"protonmail.co":  "protonmail.com",
	"protonmai.com":  "protonmail.com",
	"protonmial.com": "protonmail.com",

	// live.com / msn.com
	"live.co":   "live.com",
	"live.con":  "live.com",
	"livee.com": "live.com",
	"msn.co":    "msn.com",
}

// suggestDomain returns the corrected domain for a known misspelling.
func suggestDomain(domain string) (string, bool) {
	corrected, ok := typoDomains[domain]
	return corrected, ok
}
