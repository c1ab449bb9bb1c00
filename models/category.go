package models

// Category is a fixed catalog bucket. The set is defined once at package load
// and never mutated.
type Category struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisplayCount string `json:"displayCount"`
	// ProjectType is the contact form value this category hands off to
	ProjectType string `json:"projectType"`
}

// Category identifiers
const (
	CategoryAIML           = "ai-ml"
	CategoryWebDevelopment = "web-development"
	CategoryFullStack      = "full-stack"
	CategoryMobileApps     = "mobile-apps"
	CategoryDatabase       = "database"
	CategoryCybersecurity  = "cybersecurity"
)

var categories = []Category{
	{
		ID:           CategoryAIML,
		Title:        "AI/ML Projects",
		Description:  "Machine Learning models, Deep Learning, Computer Vision, NLP projects",
		DisplayCount: "150+ Projects",
		ProjectType:  "AI/ML",
	},
	{
		ID:           CategoryWebDevelopment,
		Title:        "Web Development",
		Description:  "Frontend, Backend, Full-stack web applications with modern frameworks",
		DisplayCount: "200+ Projects",
		ProjectType:  "Web Development",
	},
	{
		ID:           CategoryFullStack,
		Title:        "Full-Stack Apps",
		Description:  "Complete web applications with database integration and authentication",
		DisplayCount: "120+ Projects",
		ProjectType:  "Full-Stack",
	},
	{
		ID:           CategoryMobileApps,
		Title:        "Mobile Apps",
		Description:  "Native and cross-platform mobile applications for iOS and Android",
		DisplayCount: "80+ Projects",
		ProjectType:  "Mobile Apps",
	},
	{
		ID:           CategoryDatabase,
		Title:        "Database Projects",
		Description:  "Database design, management systems, and data analytics projects",
		DisplayCount: "90+ Projects",
		ProjectType:  "Database",
	},
	{
		ID:           CategoryCybersecurity,
		Title:        "Cybersecurity",
		Description:  "Security tools, ethical hacking, and cybersecurity applications",
		DisplayCount: "60+ Projects",
		ProjectType:  "Cybersecurity",
	},
}

var categoryIndex = func() map[string]Category {
	idx := make(map[string]Category, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}()

// Categories returns the catalog categories in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// GetCategory looks up a category by id
func GetCategory(id string) (Category, bool) {
	c, ok := categoryIndex[id]
	return c, ok
}

// IsValidCategory reports whether id names a known category
func IsValidCategory(id string) bool {
	_, ok := categoryIndex[id]
	return ok
}
