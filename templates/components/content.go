package components

// Static landing page copy

const (
	SiteName     = "TechForge"
	ContactEmail = "techforge81@gmail.com"
	Location     = "Available Worldwide"
)

// Feature is one value proposition card in the about section
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Stat is a headline number under the hero
type Stat struct {
	Icon  string
	Value string
}

// NavLink is a footer or header link
type NavLink struct {
	Name string
	Href string
}

// FooterSection is one titled column of footer links
type FooterSection struct {
	Title string
	Links []NavLink
}

// NavItems are the header menu entries; each scrolls to the lower-cased section
var NavItems = []string{"Home", "About", "Projects", "Contact"}

var HeroStats = []Stat{
	{Icon: "★", Value: "500+ Projects"},
	{Icon: "👥", Value: "1000+ Students"},
	{Icon: "🏆", Value: "100% Success Rate"},
}

var Features = []Feature{
	{Icon: "✔", Title: "Quality Assured", Description: "Every project is thoroughly tested and comes with complete documentation"},
	{Icon: "⚙", Title: "Industry Standard", Description: "Built using latest technologies and following best practices"},
	{Icon: "🎓", Title: "Student Focused", Description: "Designed specifically for academic requirements and learning"},
	{Icon: "⚡", Title: "Fast Delivery", Description: "Quick turnaround time with instant download links"},
}

var FooterSections = []FooterSection{
	{
		Title: "Services",
		Links: []NavLink{
			{Name: "AI/ML Projects", Href: "#projects"},
			{Name: "Web Development", Href: "#projects"},
			{Name: "Mobile Apps", Href: "#projects"},
			{Name: "Custom Projects", Href: "#contact"},
		},
	},
	{
		Title: "Quick Links",
		Links: []NavLink{
			{Name: "Home", Href: "#home"},
			{Name: "About", Href: "#about"},
			{Name: "Projects", Href: "#projects"},
			{Name: "Contact", Href: "#contact"},
		},
	},
}
