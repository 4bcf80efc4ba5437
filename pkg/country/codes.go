package country

// entries is the closed country enumeration: ISO 3166-1 alpha-2 code,
// symbolic identifier and display name.
var entries = []entry{
	{"AD", "ANDORRA", "Andorra"},
	{"AE", "UNITED_ARAB_EMIRATES", "United Arab Emirates"},
	{"AF", "AFGHANISTAN", "Afghanistan"},
	{"AG", "ANTIGUA", "Antigua and Barbuda"},
	{"AI", "ANGUILLA", "Anguilla"},
	{"AL", "ALBANIA", "Albania"},
	{"AM", "ARMENIA", "Armenia"},
	{"AO", "ANGOLA", "Angola"},
	{"AQ", "ANTARCTICA", "Antarctica"},
	{"AR", "ARGENTINA", "Argentina"},
	{"AS", "AMERICAN_SAMOA", "American Samoa"},
	{"AT", "AUSTRIA", "Austria"},
	{"AU", "AUSTRALIA", "Australia"},
	{"AW", "ARUBA", "Aruba"},
	{"AX", "ALAND_ISLANDS", "Åland Islands"},
	{"AZ", "AZERBAIJAN", "Azerbaijan"},
	{"BA", "BOSNIA_HERZEGOVINA", "Bosnia and Herzegovina"},
	{"BB", "BARBADOS", "Barbados"},
	{"BD", "BANGLADESH", "Bangladesh"},
	{"BE", "BELGIUM", "Belgium"},
	{"BF", "BURKINA_FASO", "Burkina Faso"},
	{"BG", "BULGARIA", "Bulgaria"},
	{"BH", "BAHRAIN", "Bahrain"},
	{"BI", "BURUNDI", "Burundi"},
	{"BJ", "BENIN", "Benin"},
	{"BL", "SAINT_BARTHELEMY", "Saint Barthélemy"},
	{"BM", "BERMUDA", "Bermuda"},
	{"BN", "BRUNEI_DARUSSALAM", "Brunei Darussalam"},
	{"BO", "BOLIVIA", "Bolivia, Plurinational State of"},
	{"BQ", "BONAIRE_SINT_EUSTATIUS_SABA", "Bonaire, Sint Eustatius and Saba"},
	{"BR", "BRAZIL", "Brazil"},
	{"BS", "BAHAMAS", "Bahamas"},
	{"BT", "BHUTAN", "Bhutan"},
	{"BV", "BOUVET_ISLAND", "Bouvet Island"},
	{"BW", "BOTSWANA", "Botswana"},
	{"BY", "BELARUS", "Belarus"},
	{"BZ", "BELIZE", "Belize"},
	{"CA", "CANADA", "Canada"},
	{"CC", "COCOS_ISLANDS", "Cocos (Keeling) Islands"},
	{"CD", "CONGO_DEMOCRATIC_REPUBLIC", "Congo, Democratic Republic of the"},
	{"CF", "CENTRAL_AFRICAN_REPUBLIC", "Central African Republic"},
	{"CG", "CONGO", "Congo"},
	{"CH", "SWITZERLAND", "Switzerland"},
	{"CI", "COTE_DIVOIRE", "Côte d'Ivoire"},
	{"CK", "COOK_ISLANDS", "Cook Islands"},
	{"CL", "CHILE", "Chile"},
	{"CM", "CAMEROON", "Cameroon"},
	{"CN", "CHINA", "China"},
	{"CO", "COLOMBIA", "Colombia"},
	{"CR", "COSTA_RICA", "Costa Rica"},
	{"CU", "CUBA", "Cuba"},
	{"CV", "CAPE_VERDE", "Cabo Verde"},
	{"CW", "CURACAO", "Curaçao"},
	{"CX", "CHRISTMAS_ISLAND", "Christmas Island"},
	{"CY", "CYPRUS", "Cyprus"},
	{"CZ", "CZECH_REPUBLIC", "Czechia"},
	{"DE", "GERMANY", "Germany"},
	{"DJ", "DJIBOUTI", "Djibouti"},
	{"DK", "DENMARK", "Denmark"},
	{"DM", "DOMINICA", "Dominica"},
	{"DO", "DOMINICAN_REPUBLIC", "Dominican Republic"},
	{"DZ", "ALGERIA", "Algeria"},
	{"EC", "ECUADOR", "Ecuador"},
	{"EE", "ESTONIA", "Estonia"},
	{"EG", "EGYPT", "Egypt"},
	{"EH", "WESTERN_SAHARA", "Western Sahara"},
	{"ER", "ERITREA", "Eritrea"},
	{"ES", "SPAIN", "Spain"},
	{"ET", "ETHIOPIA", "Ethiopia"},
	{"FI", "FINLAND", "Finland"},
	{"FJ", "FIJI", "Fiji"},
	{"FK", "FALKLAND_ISLANDS", "Falkland Islands (Malvinas)"},
	{"FM", "MICRONESIA", "Micronesia, Federated States of"},
	{"FO", "FAROE_ISLANDS", "Faroe Islands"},
	{"FR", "FRANCE", "France"},
	{"GA", "GABON", "Gabon"},
	{"GB", "UNITED_KINGDOM", "United Kingdom of Great Britain and Northern Ireland"},
	{"GD", "GRENADA", "Grenada"},
	{"GE", "GEORGIA", "Georgia"},
	{"GF", "FRENCH_GUIANA", "French Guiana"},
	{"GG", "GUERNSEY", "Guernsey"},
	{"GH", "GHANA", "Ghana"},
	{"GI", "GIBRALTAR", "Gibraltar"},
	{"GL", "GREENLAND", "Greenland"},
	{"GM", "GAMBIA", "Gambia"},
	{"GN", "GUINEA", "Guinea"},
	{"GP", "GUADELOUPE", "Guadeloupe"},
	{"GQ", "EQUATORIAL_GUINEA", "Equatorial Guinea"},
	{"GR", "GREECE", "Greece"},
	{"GS", "SOUTH_GEORGIA_SANDWICH_ISLANDS", "South Georgia and the South Sandwich Islands"},
	{"GT", "GUATEMALA", "Guatemala"},
	{"GU", "GUAM", "Guam"},
	{"GW", "GUINEA_BISSAU", "Guinea-Bissau"},
	{"GY", "GUYANA", "Guyana"},
	{"HK", "HONG_KONG", "Hong Kong"},
	{"HM", "HEARD_MCDONALD_ISLANDS", "Heard Island and McDonald Islands"},
	{"HN", "HONDURAS", "Honduras"},
	{"HR", "CROATIA", "Croatia"},
	{"HT", "HAITI", "Haiti"},
	{"HU", "HUNGARY", "Hungary"},
	{"ID", "INDONESIA", "Indonesia"},
	{"IE", "IRELAND", "Ireland"},
	{"IL", "ISRAEL", "Israel"},
	{"IM", "ISLE_OF_MAN", "Isle of Man"},
	{"IN", "INDIA", "India"},
	{"IO", "BRITISH_INDIAN_OCEAN_TERRITORY", "British Indian Ocean Territory"},
	{"IQ", "IRAQ", "Iraq"},
	{"IR", "IRAN", "Iran, Islamic Republic of"},
	{"IS", "ICELAND", "Iceland"},
	{"IT", "ITALY", "Italy"},
	{"JE", "JERSEY", "Jersey"},
	{"JM", "JAMAICA", "Jamaica"},
	{"JO", "JORDAN", "Jordan"},
	{"JP", "JAPAN", "Japan"},
	{"KE", "KENYA", "Kenya"},
	{"KG", "KYRGYZSTAN", "Kyrgyzstan"},
	{"KH", "CAMBODIA", "Cambodia"},
	{"KI", "KIRIBATI", "Kiribati"},
	{"KM", "COMOROS", "Comoros"},
	{"KN", "SAINT_KITTS_NEVIS", "Saint Kitts and Nevis"},
	{"KP", "KOREA_NORTH", "Korea, Democratic People's Republic of"},
	{"KR", "KOREA_SOUTH", "Korea, Republic of"},
	{"KW", "KUWAIT", "Kuwait"},
	{"KY", "CAYMAN_ISLANDS", "Cayman Islands"},
	{"KZ", "KAZAKHSTAN", "Kazakhstan"},
	{"LA", "LAO", "Lao People's Democratic Republic"},
	{"LB", "LEBANON", "Lebanon"},
	{"LC", "SAINT_LUCIA", "Saint Lucia"},
	{"LI", "LIECHTENSTEIN", "Liechtenstein"},
	{"LK", "SRI_LANKA", "Sri Lanka"},
	{"LR", "LIBERIA", "Liberia"},
	{"LS", "LESOTHO", "Lesotho"},
	{"LT", "LITHUANIA", "Lithuania"},
	{"LU", "LUXEMBOURG", "Luxembourg"},
	{"LV", "LATVIA", "Latvia"},
	{"LY", "LIBYA", "Libya"},
	{"MA", "MOROCCO", "Morocco"},
	{"MC", "MONACO", "Monaco"},
	{"MD", "MOLDOVA", "Moldova, Republic of"},
	{"ME", "MONTENEGRO", "Montenegro"},
	{"MF", "SAINT_MARTIN_FRENCH", "Saint Martin (French part)"},
	{"MG", "MADAGASCAR", "Madagascar"},
	{"MH", "MARSHALL_ISLANDS", "Marshall Islands"},
	{"MK", "MACEDONIA", "North Macedonia"},
	{"ML", "MALI", "Mali"},
	{"MM", "MYANMAR", "Myanmar"},
	{"MN", "MONGOLIA", "Mongolia"},
	{"MO", "MACAO", "Macao"},
	{"MP", "NORTHERN_MARIANA_ISLANDS", "Northern Mariana Islands"},
	{"MQ", "MARTINIQUE", "Martinique"},
	{"MR", "MAURITANIA", "Mauritania"},
	{"MS", "MONTSERRAT", "Montserrat"},
	{"MT", "MALTA", "Malta"},
	{"MU", "MAURITIUS", "Mauritius"},
	{"MV", "MALDIVES", "Maldives"},
	{"MW", "MALAWI", "Malawi"},
	{"MX", "MEXICO", "Mexico"},
	{"MY", "MALAYSIA", "Malaysia"},
	{"MZ", "MOZAMBIQUE", "Mozambique"},
	{"NA", "NAMIBIA", "Namibia"},
	{"NC", "NEW_CALEDONIA", "New Caledonia"},
	{"NE", "NIGER", "Niger"},
	{"NF", "NORFOLK_ISLAND", "Norfolk Island"},
	{"NG", "NIGERIA", "Nigeria"},
	{"NI", "NICARAGUA", "Nicaragua"},
	{"NL", "NETHERLANDS", "Netherlands"},
	{"NO", "NORWAY", "Norway"},
	{"NP", "NEPAL", "Nepal"},
	{"NR", "NAURU", "Nauru"},
	{"NU", "NIUE", "Niue"},
	{"NZ", "NEW_ZEALAND", "New Zealand"},
	{"OM", "OMAN", "Oman"},
	{"PA", "PANAMA", "Panama"},
	{"PE", "PERU", "Peru"},
	{"PF", "FRENCH_POLYNESIA", "French Polynesia"},
	{"PG", "PAPUA_NEW_GUINEA", "Papua New Guinea"},
	{"PH", "PHILIPPINES", "Philippines"},
	{"PK", "PAKISTAN", "Pakistan"},
	{"PL", "POLAND", "Poland"},
	{"PM", "SAINT_PIERRE_MIQUELON", "Saint Pierre and Miquelon"},
	{"PN", "PITCAIRN", "Pitcairn"},
	{"PR", "PUERTO_RICO", "Puerto Rico"},
	{"PS", "PALESTINIAN_TERRITORY", "Palestine, State of"},
	{"PT", "PORTUGAL", "Portugal"},
	{"PW", "PALAU", "Palau"},
	{"PY", "PARAGUAY", "Paraguay"},
	{"QA", "QATAR", "Qatar"},
	{"RE", "REUNION", "Réunion"},
	{"RO", "ROMANIA", "Romania"},
	{"RS", "SERBIA", "Serbia"},
	{"RU", "RUSSIAN_FEDERATION", "Russian Federation"},
	{"RW", "RWANDA", "Rwanda"},
	{"SA", "SAUDI_ARABIA", "Saudi Arabia"},
	{"SB", "SOLOMON_ISLANDS", "Solomon Islands"},
	{"SC", "SEYCHELLES", "Seychelles"},
	{"SD", "SUDAN", "Sudan"},
	{"SE", "SWEDEN", "Sweden"},
	{"SG", "SINGAPORE", "Singapore"},
	{"SH", "SAINT_HELENA_ASCENSION_TRISTAN_DA_CUNHA", "Saint Helena, Ascension and Tristan da Cunha"},
	{"SI", "SLOVENIA", "Slovenia"},
	{"SJ", "SVALBARD_JAN_MAYEN", "Svalbard and Jan Mayen"},
	{"SK", "SLOVAKIA", "Slovakia"},
	{"SL", "SIERRA_LEONE", "Sierra Leone"},
	{"SM", "SAN_MARINO", "San Marino"},
	{"SN", "SENEGAL", "Senegal"},
	{"SO", "SOMALIA", "Somalia"},
	{"SR", "SURINAME", "Suriname"},
	{"SS", "SOUTH_SUDAN", "South Sudan"},
	{"ST", "SAO_TOME_PRINCIPE", "Sao Tome and Principe"},
	{"SV", "EL_SALVADOR", "El Salvador"},
	{"SX", "SINT_MAARTEN", "Sint Maarten (Dutch part)"},
	{"SY", "SYRIA", "Syrian Arab Republic"},
	{"SZ", "SWAZILAND", "Eswatini"},
	{"TC", "TURKS_CAICOS_ISLANDS", "Turks and Caicos Islands"},
	{"TD", "CHAD", "Chad"},
	{"TF", "FRENCH_SOUTHERN_TERRITORIES", "French Southern Territories"},
	{"TG", "TOGO", "Togo"},
	{"TH", "THAILAND", "Thailand"},
	{"TJ", "TAJIKISTAN", "Tajikistan"},
	{"TK", "TOKELAU", "Tokelau"},
	{"TL", "TIMOR_LESTE", "Timor-Leste"},
	{"TM", "TURKMENISTAN", "Turkmenistan"},
	{"TN", "TUNISIA", "Tunisia"},
	{"TO", "TONGA", "Tonga"},
	{"TR", "TURKEY", "Türkiye"},
	{"TT", "TRINIDAD_TOBAGO", "Trinidad and Tobago"},
	{"TV", "TUVALU", "Tuvalu"},
	{"TW", "TAIWAN", "Chinese Taipei"},
	{"TZ", "TANZANIA", "Tanzania, United Republic of"},
	{"UA", "UKRAINE", "Ukraine"},
	{"UG", "UGANDA", "Uganda"},
	{"UM", "UNITED_STATES_MINOR_OUTLYING_ISLANDS", "United States Minor Outlying Islands"},
	{"US", "UNITED_STATES", "United States of America"},
	{"UY", "URUGUAY", "Uruguay"},
	{"UZ", "UZBEKISTAN", "Uzbekistan"},
	{"VA", "VATICAN", "Holy See"},
	{"VC", "SAINT_VINCENT_GRENADINES", "Saint Vincent and the Grenadines"},
	{"VE", "VENEZUELA", "Venezuela, Bolivarian Republic of"},
	{"VG", "VIRGIN_ISLANDS_BRITISH", "Virgin Islands, British"},
	{"VI", "VIRGIN_ISLANDS", "Virgin Islands, U.S."},
	{"VN", "VIETNAM", "Viet Nam"},
	{"VU", "VANUATU", "Vanuatu"},
	{"WF", "WALLIS_FUTUNA", "Wallis and Futuna"},
	{"WS", "SAMOA", "Samoa"},
	{"XK", "KOSOVO", "Kosovo"},
	{"YE", "YEMEN", "Yemen"},
	{"YT", "MAYOTTE", "Mayotte"},
	{"ZA", "SOUTH_AFRICA", "South Africa"},
	{"ZM", "ZAMBIA", "Zambia"},
	{"ZW", "ZIMBABWE", "Zimbabwe"},
}
