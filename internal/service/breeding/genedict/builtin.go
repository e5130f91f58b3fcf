package genedict

import "github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"

// Builtin returns the ball python gene table the registry ships with.
// Order matters: on alias collisions the first registered name wins.
func Builtin() []Entry {
	return []Entry{
		// Recessive.
		{Name: "Albino", Category: domain.CategoryRecessive, Aliases: []string{"Amel", "Amelanistic"}},
		{Name: "Axanthic", Category: domain.CategoryRecessive, Aliases: []string{"Axan"}},
		{Name: "VPI Axanthic", Category: domain.CategoryRecessive, Aliases: []string{"VPI"}},
		{Name: "Clown", Category: domain.CategoryRecessive},
		{Name: "Piebald", Category: domain.CategoryRecessive, Aliases: []string{"Pied"}},
		{Name: "Hypo", Category: domain.CategoryRecessive, Aliases: []string{"Ghost", "Hypomelanistic"}},
		{Name: "Lavender Albino", Category: domain.CategoryRecessive, Aliases: []string{"Lavender", "Lav"}},
		{Name: "Caramel Albino", Category: domain.CategoryRecessive, Aliases: []string{"Caramel"}},
		{Name: "Candy", Category: domain.CategoryRecessive, Aliases: []string{"Toffee"}},
		{Name: "Desert Ghost", Category: domain.CategoryRecessive},
		{Name: "Genetic Stripe", Category: domain.CategoryRecessive},
		{Name: "Ultramel", Category: domain.CategoryRecessive},
		{Name: "Monsoon", Category: domain.CategoryRecessive},
		{Name: "Sunset", Category: domain.CategoryRecessive},
		{Name: "Tri-Stripe", Category: domain.CategoryRecessive, Aliases: []string{"Tri Stripe", "Tristripe"}},
		{Name: "Orange Ghost", Category: domain.CategoryRecessive},

		// Incomplete dominant.
		{Name: "Pastel", Category: domain.CategoryIncompleteDominant},
		{Name: "Mojave", Category: domain.CategoryIncompleteDominant, Aliases: []string{"Mojo"}},
		{Name: "Lesser", Category: domain.CategoryIncompleteDominant},
		{Name: "Butter", Category: domain.CategoryIncompleteDominant},
		{Name: "Fire", Category: domain.CategoryIncompleteDominant},
		{Name: "Enchi", Category: domain.CategoryIncompleteDominant},
		{Name: "Yellow Belly", Category: domain.CategoryIncompleteDominant, Aliases: []string{"YB"}},
		{Name: "Cinnamon", Category: domain.CategoryIncompleteDominant, Aliases: []string{"Cinny"}},
		{Name: "Black Pastel", Category: domain.CategoryIncompleteDominant},
		{Name: "Mystic", Category: domain.CategoryIncompleteDominant},
		{Name: "Phantom", Category: domain.CategoryIncompleteDominant},
		{Name: "Vanilla", Category: domain.CategoryIncompleteDominant},
		{Name: "Banana", Category: domain.CategoryIncompleteDominant, Aliases: []string{"Coral Glow"}},
		{Name: "Orange Dream", Category: domain.CategoryIncompleteDominant, Aliases: []string{"OD"}},
		{Name: "GHI", Category: domain.CategoryIncompleteDominant},
		{Name: "Leopard", Category: domain.CategoryIncompleteDominant},
		{Name: "Specter", Category: domain.CategoryIncompleteDominant},
		{Name: "Gravel", Category: domain.CategoryIncompleteDominant},
		{Name: "Asphalt", Category: domain.CategoryIncompleteDominant},
		{Name: "Cypress", Category: domain.CategoryIncompleteDominant},

		// Dominant.
		{Name: "Spider", Category: domain.CategoryDominant},
		{Name: "Pinstripe", Category: domain.CategoryDominant, Aliases: []string{"Pin"}},
		{Name: "Champagne", Category: domain.CategoryDominant},
		{Name: "Calico", Category: domain.CategoryDominant},
		{Name: "Woma", Category: domain.CategoryDominant},
		{Name: "Spotnose", Category: domain.CategoryDominant},
		{Name: "Blade", Category: domain.CategoryDominant},
		{Name: "Puma", Category: domain.CategoryDominant},

		// No quantitative model.
		{Name: "Ringer", Category: domain.CategoryOther},
		{Name: "Paradox", Category: domain.CategoryOther},
		{Name: "Dinker", Category: domain.CategoryOther},
	}
}
