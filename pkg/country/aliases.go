package country

// defaultAliases covers demonyms, historic and alternate names and local
// spellings seen in herbarium and aggregator exports. Keys are matched after
// lower-casing, trimming and accent folding.
var defaultAliases = map[string]Code{
	"uk":                               UnitedKingdom,
	"u.k.":                             UnitedKingdom,
	"united kingdom":                   UnitedKingdom,
	"great britain":                    UnitedKingdom,
	"britain":                          UnitedKingdom,
	"england":                          UnitedKingdom,
	"scotland":                         UnitedKingdom,
	"wales":                            UnitedKingdom,
	"northern ireland":                 UnitedKingdom,
	"u.s.a.":                           UnitedStates,
	"usa":                              UnitedStates,
	"u.s.":                             UnitedStates,
	"united states":                    UnitedStates,
	"america":                          UnitedStates,
	"estados unidos":                   UnitedStates,
	"deutschland":                      Germany,
	"federal republic of germany":      Germany,
	"west germany":                     Germany,
	"east germany":                     Germany,
	"espana":                           Spain,
	"holland":                          Netherlands,
	"the netherlands":                  Netherlands,
	"nederland":                        Netherlands,
	"mexico":                           "MX",
	"brasil":                           "BR",
	"russia":                           "RU",
	"ussr":                             "RU",
	"south korea":                      "KR",
	"republic of korea":                "KR",
	"north korea":                      "KP",
	"iran":                             "IR",
	"syria":                            "SY",
	"vietnam":                          "VN",
	"laos":                             "LA",
	"bolivia":                          "BO",
	"venezuela":                        "VE",
	"tanzania":                         "TZ",
	"czech republic":                   "CZ",
	"czechoslovakia":                   "CZ",
	"macedonia":                        "MK",
	"burma":                            "MM",
	"ivory coast":                      "CI",
	"cote d'ivoire":                    "CI",
	"zaire":                            "CD",
	"democratic republic of the congo": "CD",
	"democratic republic of congo":     "CD",
	"dr congo":                         "CD",
	"republic of the congo":            "CG",
	"taiwan":                           "TW",
	"republic of china":                "TW",
	"people's republic of china":       "CN",
	"peoples republic of china":        "CN",
	"pr china":                         "CN",
	"p.r. china":                       "CN",
	"hong kong sar":                    "HK",
	"turkey":                           "TR",
	"turkiye":                          "TR",
	"swaziland":                        "SZ",
	"cape verde":                       "CV",
	"east timor":                       "TL",
	"vatican":                          "VA",
	"vatican city":                     "VA",
	"moldova":                          "MD",
	"brunei":                           "BN",
	"palestine":                        "PS",
	"micronesia":                       "FM",
	"reunion":                          "RE",
	"curacao":                          "CW",
	"azores":                           "PT",
	"madeira":                          "PT",
	"canary islands":                   "ES",
	"galapagos":                        "EC",
	"hawaii":                           "US",
	"puerto rico":                      "PR",
	"yugoslavia":                       "RS",
	"french guyana":                    "GF",
	"st. lucia":                        "LC",
	"st. helena":                       "SH",
	"new guinea":                       "PG",
	"the gambia":                       "GM",
	"the bahamas":                      "BS",
	"falkland islands":                 "FK",
	"kosova":                           "XK",
}
