package stack

import "sort"

// Info describes one supported tech stack: how its dev server is started
// and where it listens by default. DevCommand is empty for stacks that
// have no runnable server (empty projects, custom instructions).
type Info struct {
	ProjectType string            `yaml:"project_type"`
	Language    string            `yaml:"language"`
	DevCommand  string            `yaml:"dev_command"`
	DevPort     int               `yaml:"dev_port"`
	EnvVars     map[string]string `yaml:"env_vars,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
}

// Project types as shown in the menu.
const (
	TypeFrontend  = "Frontend only"
	TypeBackend   = "Backend only"
	TypeFullstack = "Fullstack"
	TypeCustom    = "Other / Custom"
)

func builtins() map[string]Info {
	return map[string]Info{
		// Frontend
		"React (Vite)": {
			ProjectType: TypeFrontend, Language: "js",
			DevCommand: "npm run dev", DevPort: 5173,
			Tags: []string{"react", "vite"},
		},
		"React (Next.js)": {
			ProjectType: TypeFrontend, Language: "js",
			DevCommand: "npm run dev", DevPort: 3000,
			Tags: []string{"react", "nextjs"},
		},
		"Vue.js (Vite)": {
			ProjectType: TypeFrontend, Language: "js",
			DevCommand: "npm run dev", DevPort: 5173,
		},
		"Nuxt.js (Vue + SSR/SSG)": {
			ProjectType: TypeFrontend, Language: "js",
			DevCommand: "npm run dev", DevPort: 3000,
		},
		"Angular": {
			ProjectType: TypeFrontend, Language: "js",
			DevCommand: "npm start", DevPort: 4200,
		},
		"Svelte (Vite)": {
			ProjectType: TypeFrontend, Language: "js",
			DevCommand: "npm run dev", DevPort: 5173,
		},
		"SvelteKit": {
			ProjectType: TypeFrontend, Language: "js",
			DevCommand: "npm run dev", DevPort: 5173,
		},

		// Backend
		"Node.js (Express)": {
			ProjectType: TypeBackend, Language: "js",
			DevCommand: "npm run dev", DevPort: 5000,
		},
		"Fastify (Node.js)": {
			ProjectType: TypeBackend, Language: "js",
			DevCommand: "npm run dev", DevPort: 5000,
		},
		"NestJS (Node.js - TypeScript)": {
			ProjectType: TypeBackend, Language: "js",
			DevCommand: "npm run start:dev", DevPort: 3000,
		},
		"Flask (Python)": {
			ProjectType: TypeBackend, Language: "python",
			DevCommand: "flask run --debug", DevPort: 5000,
			EnvVars: map[string]string{"FLASK_ENV": "development", "FLASK_DEBUG": "1"},
		},
		"Django (Python)": {
			ProjectType: TypeBackend, Language: "python",
			DevCommand: "python manage.py runserver", DevPort: 8000,
		},
		"Spring Boot (Java)": {
			ProjectType: TypeBackend, Language: "java",
			DevCommand: "./mvnw spring-boot:run", DevPort: 8080,
		},
		"Ruby on Rails": {
			ProjectType: TypeBackend, Language: "ruby",
			DevCommand: "bin/rails server", DevPort: 3000,
		},
		"Go (Gin/Fiber)": {
			ProjectType: TypeBackend, Language: "go",
			DevCommand: "go run .", DevPort: 8080,
		},
		"ASP.NET Core (C#)": {
			ProjectType: TypeBackend, Language: "csharp",
			DevCommand: "dotnet run", DevPort: 5164,
		},

		// Fullstack
		"MERN (Mongo + Express + React + Node)": {
			ProjectType: TypeFullstack, Language: "js",
			DevCommand: "npm run dev", DevPort: 3000,
			Tags: []string{"react", "express", "mongo"},
		},
		"PERN (Postgres + Express + React + Node)": {
			ProjectType: TypeFullstack, Language: "js",
			DevCommand: "npm run dev", DevPort: 3000,
			Tags: []string{"react", "express", "postgres"},
		},
		"Flask + React": {
			ProjectType: TypeFullstack, Language: "python-js",
			DevCommand: "npm run dev", DevPort: 3000,
			Tags: []string{"react", "flask"},
		},
		"OpenAI Demo (API + minimal UI)": {
			ProjectType: TypeFullstack, Language: "python",
			DevCommand: "python app.py",
		},

		// Other / Custom
		"Empty Project (just Git + README)": {
			ProjectType: TypeCustom, Language: "none",
		},
		"Provide custom instructions at runtime": {
			ProjectType: TypeCustom, Language: "none",
		},
	}
}

// Catalog holds the built-in stack table plus any user-defined stacks
// merged over it.
type Catalog struct {
	stacks map[string]Info
}

func NewCatalog() *Catalog {
	return &Catalog{stacks: builtins()}
}

// Get returns the stack entry for name.
func (c *Catalog) Get(name string) (Info, bool) {
	info, ok := c.stacks[name]
	return info, ok
}

// Names lists the known stacks grouped by project type, in menu order.
func (c *Catalog) Names(projectType string) []string {
	var out []string
	for name, info := range c.stacks {
		if projectType == "" || info.ProjectType == projectType {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
