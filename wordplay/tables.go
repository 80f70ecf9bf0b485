package wordplay

// commonNames holds frequent given names used to spot tokens that split into
// two names (JACKAL = JACK + AL).
var commonNames = map[string]struct{}{}

func init() {
	for _, n := range []string{
		"JACK", "JOHN", "JAMES", "ROBERT", "MICHAEL", "WILLIAM", "DAVID", "RICHARD",
		"JOSEPH", "THOMAS", "CHARLES", "CHRISTOPHER", "DANIEL", "MATTHEW", "ANTHONY",
		"MARK", "DONALD", "STEVEN", "PAUL", "ANDREW", "JOSHUA", "KENNETH", "KEVIN",
		"BRIAN", "GEORGE", "EDWARD", "RONALD", "TIMOTHY", "JASON", "JEFFREY",
		"RYAN", "JACOB", "GARY", "NICHOLAS", "ERIC", "JONATHAN", "STEPHEN", "LARRY",
		"JUSTIN", "SCOTT", "BRANDON", "BENJAMIN", "SAMUEL", "FRANK", "GREGORY",
		"RAYMOND", "ALEXANDER", "PATRICK", "DENNIS", "JERRY", "TYLER",
		"AARON", "JOSE", "HENRY", "ADAM", "DOUGLAS", "NATHAN", "ZACHARY", "KYLE",
		"NOAH", "ETHAN", "JEREMY", "WALTER", "CHRISTIAN", "KEITH", "ROGER", "TERRY",
		"ALAN", "SEAN", "WAYNE", "RALPH", "ROY", "JUAN", "LOUIS", "PHILIP", "BOBBY",
		"JOHNNY", "RUSSELL", "ALBERT", "ALEX", "AL", "TED", "MEL", "PAT", "RON",
		"LEVI", "TATE", "BEN", "SAM", "JIM", "TOM", "DAN", "BOB", "JOE", "LEO",
		"MAX", "IAN", "LUKE", "OWEN", "ELI", "OLIVER", "LUCAS", "MASON", "LOGAN",
		"JACKSON", "SEBASTIAN", "THEODORE", "AIDEN", "WYATT", "ASHER", "CARTER",
		"JULIAN", "GRAYSON", "JAYDEN", "GABRIEL", "ISAAC", "LINCOLN", "HUDSON",
		"DYLAN", "EZRA", "JAXON", "MAVERICK", "JOSIAH", "ISAIAH", "ELIAS", "CALEB",
		"ADRIAN", "MILES", "NOLAN", "COLIN", "BLAKE", "TRUMAN", "ROMAN", "BRODY",
		"COOPER", "AXEL", "CARLOS",
		"ANN", "MAY", "JOY", "LEE", "KAY", "EVE", "ADA", "IDA", "IVY", "AMY",
		"JILL", "JANE", "JOAN", "JEAN", "ROSE", "RUTH", "MARY", "ANNA", "ELLA",
		"LILY", "EMMA", "OLIVIA", "SOPHIA", "ISABELLA", "CHARLOTTE", "AMELIA",
		"MIA", "HARPER", "EVELYN", "ABIGAIL", "EMILY", "ELIZABETH", "MILA",
		"AVERY", "SOFIA", "CAMILA", "ARIA", "SCARLETT", "VICTORIA",
		"MADISON", "LUNA", "GRACE", "CHLOE", "PENELOPE", "LAYLA", "RILEY",
		"ZOEY", "NORA", "ELEANOR", "HANNAH", "LILLIAN", "ADDISON",
		"AUBREY", "ELLIE", "STELLA", "NATALIE", "LEAH", "HAZEL",
		"VIOLET", "AURORA", "SAVANNAH", "AUDREY", "BROOKLYN", "BELLA",
		"CLAIRE", "SKYLAR", "LUCY", "PAISLEY", "EVERLY", "CAROLINE",
		"NOVA", "GENESIS", "AALIYAH", "KENNEDY", "KINSLEY", "ALLISON", "MAYA",
		"SARAH", "ARIANNA", "ALICE", "MADELYN", "CORALINE", "HADLEY", "GABRIELLA",
		"CELESTE", "JADE", "JOSEPHINE", "PEARL", "RUBY", "SADIE",
		"NAOMI", "ELIZA", "ELENA", "QUINN", "MADELEINE", "DELILAH",
		"GENEVIEVE", "JULIETTE", "MARGARET", "CATHERINE", "ANNABELLE",
	} {
		commonNames[n] = struct{}{}
	}
}

// compounds maps an anchor word to words that commonly combine with it, for
// "___ BALL" style fill-in-the-blank groups.
var compounds = map[string][]string{
	"BALL":  {"BASKET", "FOOT", "SNOW", "EYE", "BASE", "SOFT", "VOLLEY", "BEACH"},
	"BOARD": {"CHESS", "DASH", "KEY", "CUTTING", "BULLETIN", "BLACK", "WHITE"},
	"ROOM":  {"BED", "LIVING", "DINING", "BATH", "CLASS", "WAITING", "BOOM"},
	"MATE":  {"CLASS", "ROOM", "TEAM", "SOUL", "CHECK", "PLAY"},
	"WORK":  {"HOME", "FIRE", "TEAM", "NET", "FRAME", "ART", "HOUSE"},
	"HOUSE": {"TREE", "WHITE", "GREEN", "PLAY", "WARE", "LIGHT"},
	"LINE":  {"PICKUP", "BOTTOM", "DEAD", "FINISH", "GOAL", "TIME"},
	"CODE":  {"ZIP", "AREA", "POSTAL", "MORSE", "BAR", "SOURCE"},
	"BAR":   {"CANDY", "CHOCOLATE", "SOAP", "CEREAL", "PROGRESS", "SNACK"},
	"FIRE":  {"CAMP", "WILD", "BON", "CEASE", "GUN", "PLACE"},
	"SNOW":  {"BLOW", "SHOW", "FALL", "BALL", "MAN", "WHITE"},
	"SUN":   {"RISE", "SET", "SHINE", "LIGHT", "GLASS", "FLOWER"},
	"MOON":  {"FULL", "NEW", "HALF", "LIGHT", "BEAM", "SHINE"},
	"SEA":   {"UNDER", "OVER", "DEEP", "SHALLOW", "LEVEL", "SHORE"},
	"AIR":   {"FRESH", "THIN", "FAIR", "STAIR", "HAIR", "PAIR"},
	"TIME":  {"LIFE", "PART", "FULL", "HALF", "QUARTER", "PRIME"},
	"DAY":   {"BIRTH", "HOLI", "WEEK", "YESTER", "TO", "SUN"},
	"NIGHT": {"MID", "TO", "OVER", "LIGHT", "DARK", "LATE"},
	"LIGHT": {"DAY", "NIGHT", "MOON", "SUN", "BRIGHT", "FAIRY"},
	"STAR":  {"MOVIE", "ROCK", "POP", "SHOOTING", "MORNING", "EVENING"},
}

var commonPrefixes = []string{"UN", "RE", "PRE", "DIS", "MIS", "OVER", "OUT", "IN", "IM", "NON"}

var commonSuffixes = []string{"ING", "TION", "NESS", "MENT", "ABLE", "IBLE", "LY", "ER", "ED", "ES", "S"}
