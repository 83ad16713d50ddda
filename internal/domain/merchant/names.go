package merchant

// NamePool is the closed set of regional name lists
type NamePool string

const (
	PoolReikland   NamePool = "reikland"
	PoolBretonnian NamePool = "bretonnian"
	PoolTilean     NamePool = "tilean"
	PoolDwarf      NamePool = "dwarf"
	PoolHalfling   NamePool = "halfling"
)

// FallbackPool serves personalities without a pool of their own
const FallbackPool = PoolReikland

// Names is a pair of first and last name lists
type Names struct {
	First []string
	Last  []string
}

// LookupNames returns the name lists for a pool, falling back to FallbackPool
func LookupNames(pool NamePool) Names {
	switch pool {
	case PoolReikland:
		return reiklandNames
	case PoolBretonnian:
		return Names{
			First: []string{"Anselme", "Bertrand", "Clotilde", "Eloise", "Gaston", "Isabeau", "Laurent", "Mathilde"},
			Last:  []string{"Beaumont", "Duchamp", "Fontaine", "Garamont", "Lavoisier", "Montfort", "Rouen", "Valtaine"},
		}
	case PoolTilean:
		return Names{
			First: []string{"Alessio", "Bianca", "Carlo", "Donatella", "Enzo", "Lucrezia", "Marco", "Sofia"},
			Last:  []string{"Bassano", "Castellari", "Ferraro", "Lombardi", "Moretti", "Rinaldi", "Sartori", "Verezzo"},
		}
	case PoolDwarf:
		return Names{
			First: []string{"Bardin", "Dagna", "Durak", "Grimna", "Kazrik", "Morgrim", "Snorri", "Thora"},
			Last:  []string{"Anvilhand", "Blackhammer", "Copperbeard", "Forgefire", "Ironfist", "Stonebrow", "Thunderpick", "Granitebelly"},
		}
	case PoolHalfling:
		return Names{
			First: []string{"Bingo", "Daisy", "Hamnet", "Lobelia", "Merry", "Poppy", "Tobold", "Wilhelmina"},
			Last:  []string{"Ashfield", "Brandysnap", "Goodbarrel", "Hayfoot", "Merrydew", "Puddlefoot", "Thorncroft", "Underbough"},
		}
	default:
		return reiklandNames
	}
}

var reiklandNames = Names{
	First: []string{"Albrecht", "Birgit", "Dieter", "Elsa", "Friedrich", "Gretchen", "Heinrich", "Katarina", "Lukas", "Marlene"},
	Last:  []string{"Bauer", "Fischer", "Hoffmann", "Krause", "Muller", "Richter", "Schmidt", "Vogel", "Wagner", "Zimmermann"},
}
