package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Source struct {
	Owner       string `yaml:"owner"`
	Repo        string `yaml:"repo"`
	Branch      string `yaml:"branch"`
	TokenSecret string `yaml:"token_secret"`
}

type Build struct {
	Image       string   `yaml:"image"`
	ComputeType string   `yaml:"compute_type"`
	Install     []string `yaml:"install"`
	Commands    []string `yaml:"commands"`
	OutputDir   string   `yaml:"output_dir"`
}

type Site struct {
	Name           string   `yaml:"name"`
	Domains        []string `yaml:"domains"`
	CertificateArn string   `yaml:"certificate_arn"`
	GeoWhitelist   []string `yaml:"geo_whitelist"`
	CacheControl   string   `yaml:"cache_control"`
	IndexDocument  string   `yaml:"index_document"`
}

type Config struct {
	Variant string `yaml:"variant"`
	Site    Site   `yaml:"site"`
	Source  Source `yaml:"source"`
	Build   Build  `yaml:"build"`
}

func Load(path string) (Config, error) {
	var c Config

	c.Variant = "default"
	c.Site.Name = "static-site"
	c.Site.CacheControl = "public, max-age=300"
	c.Site.IndexDocument = "index.html"
	c.Source.Branch = "main"
	c.Build.Image = "aws/codebuild/standard:7.0"
	c.Build.ComputeType = "BUILD_GENERAL1_SMALL"
	c.Build.OutputDir = "dist"

	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("SITE_NAME"); v != "" {
		c.Site.Name = v
	}

	if v := os.Getenv("SITE_DOMAINS"); v != "" {
		c.Site.Domains = splitList(v)
	}

	if v := os.Getenv("SITE_CERTIFICATE_ARN"); v != "" {
		c.Site.CertificateArn = v
	}

	if v := os.Getenv("SITE_GEO_WHITELIST"); v != "" {
		c.Site.GeoWhitelist = splitList(v)
	}

	if v := os.Getenv("SITE_VARIANT"); v != "" {
		c.Variant = v
	}

	if v := os.Getenv("GITHUB_OWNER"); v != "" {
		c.Source.Owner = v
	}

	if v := os.Getenv("GITHUB_REPO"); v != "" {
		c.Source.Repo = v
	}

	if v := os.Getenv("GITHUB_BRANCH"); v != "" {
		c.Source.Branch = v
	}

	if v := os.Getenv("GITHUB_TOKEN_SECRET"); v != "" {
		c.Source.TokenSecret = v
	}

	if c.Source.Owner == "" || c.Source.Repo == "" {
		return c, errors.New("source.owner and source.repo are required")
	}

	if c.Source.TokenSecret == "" {
		return c, errors.New("source.token_secret is required (name of the secret holding the repository token)")
	}

	if len(c.Site.Domains) == 0 || len(c.Site.Domains) > 2 {
		return c, errors.New("site.domains must list one or two domain names")
	}

	if c.Site.CertificateArn == "" {
		return c, errors.New("site.certificate_arn is required")
	}

	if len(c.Build.Commands) == 0 {
		return c, errors.New("build.commands must list at least one command")
	}

	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
