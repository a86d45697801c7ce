package usecase

// Catalogs for brand and variant detection. Detection is a plain
// substring scan in slice order, so ORDER ENCODES PRIORITY: when two
// entries can overlap inside the same name (e.g. "campagnola" and
// "la campagnola"), the earlier entry wins. Keep that in mind when
// adding entries. These lists are open lookup tables, not an
// exhaustive model of the market.

// DefaultBrandCatalog returns the known-brand priority list
func DefaultBrandCatalog() []string {
	return []string{
		// Beverages
		"coca cola", "coca-cola", "pepsi", "sprite", "fanta", "schweppes",
		"seven up", "7up", "quilmes", "andes", "brahma", "stella artois",
		"heineken", "corona", "budweiser",

		// Cookies and snacks
		"oreo", "milka", "tofi", "terrabusi", "bagley", "arcor", "georgalos",
		"shot", "rumba", "express", "club social", "criollitas",

		// Oils and condiments
		"natura", "cocinero", "lira", "morixe", "patito", "mazola",
		"hellmanns", "hell'mann's", "hellmans", "danica", "cañuelas",

		// Dairy
		"sancor", "la serenisima", "serenisima", "ilolay", "tregar",
		"la paulina", "paulina", "milkaut", "casanto",

		// Pantry
		"gallo", "molinos", "marolio", "muy bien", "día", "argenova",
		"lucchetti", "matarazzo", "don vicente", "favorita",

		// Meats and cold cuts
		"campagnola", "la campagnola", "swift", "paladini", "carrefour",
		"granja del sol",

		// Canned goods
		"gomes", "cuisine", "lomitos", "abc",

		// Cleaning
		"cif", "magistral", "ala", "skip", "vivere", "procenex",
		"ayudin", "lysoform", "mr musculo", "blem",

		// Personal care
		"dove", "sedal", "pantene", "head shoulders", "loreal", "l'oreal",
		"nivea", "rexona", "axe", "plusbelle", "suave",
	}
}

// DefaultVariantCatalog returns the known product-variant tokens
func DefaultVariantCatalog() []string {
	return []string{
		"clasica", "original", "mini", "family", "maxi", "grande", "chico",
		"light", "diet", "zero", "sin azucar", "integral", "premium",
		"suave", "extra", "plus", "max", "ultra",
	}
}

// DefaultStopWords returns the tokens dropped during name cleanup:
// articles, prepositions and packaging nouns that carry no identity.
func DefaultStopWords() map[string]bool {
	return map[string]bool{
		"de": true, "la": true, "el": true, "en": true, "con": true,
		"sin": true, "al": true, "del": true, "los": true, "las": true,
		"pack": true, "unidades": true, "unidad": true, "bolsa": true,
		"caja": true, "paquete": true, "lata": true, "botella": true,
		"envase": true, "x": true,
	}
}
