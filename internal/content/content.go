// Package content loads the externally authored storefront content:
// the hero blurb, the about section, the baker bio, and the product
// catalog. Sections load in parallel and fail independently; a section
// that cannot be loaded falls back to baked-in copy so the rest of the
// page is unaffected.
package content

// Section names, doubling as the file paths the JSON documents are
// published under.
const (
	HeroPath     = "settings/hero.json"
	AboutPath    = "settings/about.json"
	BakerPath    = "settings/baker.json"
	ProductsPath = "products.json"
)

// Hero is the headline block at the top of the page.
type Hero struct {
	Heading string `json:"heading"`
	Tagline string `json:"tagline"`
}

// About is the bakery's about section.
type About struct {
	Title      string `json:"title"`
	Paragraph1 string `json:"paragraph1"`
	Paragraph2 string `json:"paragraph2"`
}

// Baker is the baker bio block.
type Baker struct {
	Photo string `json:"photo"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
}

// Fallback copy used when a section fails to load.
var (
	FallbackHero = Hero{
		Heading: "Flavor-Forward Baked Goods",
		Tagline: "Sophisticated, artisan creations for those who appreciate exceptional quality and taste",
	}
	FallbackAbout = About{
		Title:      "About Our Bakery",
		Paragraph1: "Unable to load content.",
	}
	FallbackBaker = Baker{
		Bio: "Unable to load baker information.",
	}
)
