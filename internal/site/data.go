package site

// Owner is the profile rendered across the site.
var Owner = Profile{
	Name:     "Dana Solberg",
	Title:    "Machine Learning Engineer",
	Email:    "dana.solberg@fastmail.com",
	Location: "Portland, OR",
	GitHub:   "https://github.com/dsolberg",
	LinkedIn: "https://www.linkedin.com/in/dana-solberg",
	About: `I build machine learning systems end to end, from data pipelines and
training infrastructure to the services that put models in front of people.
Most of my projects start with a question I couldn't stop thinking about and
turn into an excuse to learn a new tool properly. Away from the keyboard I'm
usually trail running, fixing up an old road bike, or losing at board games.`,
}

// Sections drive the home page nav and the scroll-spy script.
var Sections = []Section{
	{ID: "hero", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "projects", Label: "Projects"},
	{ID: "contact", Label: "Contact"},
}

// Projects is the static portfolio list. Order matters: the template renders
// top to bottom.
var Projects = []Project{
	{
		ID:    "drift-monitor",
		Title: "Drift Monitor",
		Description: `A production model-monitoring service that tracks feature and
prediction drift across deployed models, with configurable statistical tests
and alerting thresholds per feature.`,
		Technologies: []string{"Python", "PostgreSQL", "Kafka", "Grafana"},
		Categories:   []string{"mlops", "backend"},
		Links: []Link{
			{Label: "Source", URL: "https://github.com/dsolberg/drift-monitor"},
		},
		Achievements: []string{
			"Caught a silent feature-pipeline regression two days before quarterly retraining",
			"Reduced alert noise 60% by replacing fixed thresholds with per-feature baselines",
		},
		Company:  "Halcyon Analytics",
		Period:   "2023 — 2024",
		Featured: true,
	},
	{
		ID:    "prompt-bench",
		Title: "Prompt Bench",
		Description: `An evaluation harness for comparing LLM prompt variants against
labeled regression suites, with cost tracking and side-by-side diffing of
model outputs across providers.`,
		Technologies: []string{"Go", "SQLite", "OpenAI API"},
		Categories:   []string{"llm", "tooling"},
		Links: []Link{
			{Label: "Source", URL: "https://github.com/dsolberg/prompt-bench"},
			{Label: "Write-up", URL: "/blog/evaluating-prompts-like-software"},
		},
		Featured: true,
	},
	{
		ID:    "birdnet-edge",
		Title: "BirdNet Edge",
		Description: `A Raspberry Pi acoustic monitor that classifies local bird calls
with an on-device quantized model and publishes sightings to a small
dashboard. Built to answer whether the neighborhood owls were one bird or
three.`,
		Technologies: []string{"Python", "TensorFlow Lite", "MQTT"},
		Categories:   []string{"ml", "hardware"},
		Links: []Link{
			{Label: "Source", URL: "https://github.com/dsolberg/birdnet-edge"},
		},
	},
	{
		ID:    "this-site",
		Title: "This Site",
		Description: `The site you are reading: a Go web application that renders
markdown articles with syntax highlighting and mermaid diagrams, exports to
static HTML for hosting, and keeps privacy-friendly visitor counts.`,
		Technologies: []string{"Go", "Gin", "goldmark", "HTMX"},
		Categories:   []string{"tooling", "backend"},
		Links: []Link{
			{Label: "Source", URL: "https://github.com/dsolberg/folio"},
		},
	},
}
