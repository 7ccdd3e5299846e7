package flask

import (
	_ "embed"

	"github.com/dogeorg/flaskgen/pkg/structure"
)

//go:embed templates/app_init.py.txt
var appInit string

//go:embed templates/routes.py.txt
var routes string

//go:embed templates/view_index.py.txt
var viewIndex string

//go:embed templates/api_index.py.txt
var apiIndex string

//go:embed templates/index.html.txt
var indexTemplate string

//go:embed templates/config_init.py.txt
var configInit string

//go:embed templates/app.py.txt
var appEntry string

//go:embed templates/readme.md.txt
var readme string

//go:embed templates/requirements.txt.txt
var requirements string

//go:embed templates/gitignore.txt
var gitignore string

//go:embed templates/env.txt
var env string

// Skeleton returns a fresh copy of the Flask application layout.
func Skeleton() structure.Tree {
	return structure.Tree{
		"app": structure.Dir(structure.Tree{
			"__init__.py": structure.File(appInit),
			"routes.py":   structure.File(routes),
			"services": structure.Dir(structure.Tree{
				"__init__.py": structure.File(""),
			}),
			// views and api are split by HTTP method
			"views": methodPackage(viewIndex),
			"api":   methodPackage(apiIndex),
			"templates": structure.Dir(structure.Tree{
				"index.html": structure.File(indexTemplate),
			}),
			"static": structure.Dir(structure.Tree{
				"css":    structure.Dir(nil),
				"js":     structure.Dir(nil),
				"images": structure.Dir(nil),
			}),
		}),
		"config": structure.Dir(structure.Tree{
			"__init__.py": structure.File(configInit),
		}),
		"README.md":        structure.File(readme),
		"requirements.txt": structure.File(requirements),
		".gitignore":       structure.File(gitignore),
		"app.py":           structure.File(appEntry),
		".env":             structure.File(env),
	}
}

func methodPackage(index string) structure.Node {
	return structure.Dir(structure.Tree{
		"__init__.py": structure.File(""),
		"get": structure.Dir(structure.Tree{
			"__init__.py": structure.File(""),
			"index.py":    structure.File(index),
		}),
		"post": structure.Dir(structure.Tree{
			"__init__.py": structure.File(""),
		}),
	})
}
