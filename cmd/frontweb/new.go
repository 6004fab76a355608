package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/thefrontweb/frontweb"
	"github.com/thefrontweb/frontweb/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	Title    string
	Slug     string
	Date     string
	SiteName string
}

var titleCaser = cases.Title(language.English, cases.NoLower)

func newNewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new article in the content directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runNew(c.cfg, strings.Join(args, " "), time.Now())
			if err != nil {
				return err
			}
			cmd.Printf("created %s\n", path)
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <dir>",
		Short: "Create a starter site with config, sample article and static dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := runInit(args[0], time.Now())
			for _, p := range created {
				cmd.Printf("  created %s\n", p)
			}
			if err != nil {
				return err
			}
			cmd.Printf("\nDone! Next steps:\n\n  cd %s\n  frontweb serve --config config.yaml\n", args[0])
			return nil
		},
	}
}

// runNew writes <ContentDir>/<Category>/<slug>.mdx for title and returns its
// path. It never overwrites an existing article.
func runNew(cfg frontweb.SiteConfig, title string, now time.Time) (string, error) {
	title = titleCaser.String(strings.TrimSpace(title))
	slug := frontweb.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q has no usable characters for a slug", title)
	}

	dir := filepath.Join(cfg.ContentDir, cfg.Category)
	path := filepath.Join(dir, slug+".mdx")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("article %q already exists", path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	data := scaffoldData{
		Title:    title,
		Slug:     slug,
		Date:     now.Format("2006-01-02"),
		SiteName: cfg.Name,
	}
	if err := renderTemplate(path, scaffold.Post, data); err != nil {
		return "", err
	}
	return path, nil
}

// runInit copies the starter site into dir, which must not exist yet, and
// returns the files it created.
func runInit(dir string, now time.Time) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	name := filepath.Base(filepath.Clean(dir))
	data := scaffoldData{
		SiteName: titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(name)),
		Date:     now.Format("2006-01-02"),
	}

	var created []string
	err := fs.WalkDir(scaffold.Templates, scaffold.Site, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(scaffold.Site, path)
		if err != nil {
			return err
		}

		// Compute the output path, stripping the .tmpl suffix.
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")

		// Rename dotenv to .env.example.
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		if err := renderTemplate(outPath, path, data); err != nil {
			return err
		}
		created = append(created, outPath)
		return nil
	})
	return created, err
}

// renderTemplate executes the embedded template name into a new file at path.
func renderTemplate(path, name string, data scaffoldData) error {
	src, err := scaffold.Templates.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	tmpl, err := template.New(filepath.Base(name)).Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return f.Close()
}
