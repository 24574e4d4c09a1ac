package dashboard

// Page is one entry of the sidebar's aspect selector.
type Page struct {
	Slug  string
	Title string
}

const (
	PageIntro           = "intro"
	PageWeather         = "weather"
	PageStations        = "stations"
	PageBikeTypes       = "bike-types"
	PageMap             = "map"
	PageRecommendations = "recommendations"
)

// Pages lists the views in sidebar order.
var Pages = []Page{
	{Slug: PageIntro, Title: "Intro page"},
	{Slug: PageWeather, Title: "Weather component and bike usage"},
	{Slug: PageStations, Title: "Most popular stations"},
	{Slug: PageBikeTypes, Title: "Bike-type usage aligned to the Temperature"},
	{Slug: PageMap, Title: "Interactive map with aggregated bike trips"},
	{Slug: PageRecommendations, Title: "Recommendations"},
}

func lookupPage(slug string) (Page, bool) {
	for _, p := range Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}
