package main

import (
	"errors"
	"strings"

	"github.com/dkhalizov/site-pipeline/internal/application"
	"github.com/dkhalizov/site-pipeline/internal/domain"
	"github.com/dkhalizov/site-pipeline/internal/infrastructure/config"
	"github.com/dkhalizov/site-pipeline/internal/infrastructure/pulumi_aws"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	pulumicfg "github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		path := pulumicfg.Get(ctx, "site-pipeline:configFile")
		if path == "" {
			path = "site.yaml"
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		def := domain.StaticSiteDefinition()
		if issues := application.CheckDefinition(def); len(issues) > 0 {
			return errors.New("invalid pipeline definition: " + strings.Join(issues, "; "))
		}

		site, err := pulumi_aws.Deploy(ctx, siteArgs(cfg, def))
		if err != nil {
			return err
		}

		ctx.Export("siteBucket", site.SiteBucket.Bucket)
		ctx.Export("logBucket", site.LogBucket.Bucket)
		ctx.Export("artifactBucket", site.ArtifactBucket.Bucket)
		ctx.Export("distributionDomain", site.Distribution.DomainName)
		ctx.Export("pipeline", site.Pipeline.Name)
		ctx.Export("siteURL", pulumi.String("https://"+cfg.Site.Domains[0]))
		return nil
	})
}

func siteArgs(cfg config.Config, def domain.Definition) pulumi_aws.SiteArgs {
	return pulumi_aws.SiteArgs{
		Name:           cfg.Site.Name,
		Domains:        cfg.Site.Domains,
		CertificateArn: cfg.Site.CertificateArn,
		GeoWhitelist:   cfg.Site.GeoWhitelist,
		CacheControl:   cfg.Site.CacheControl,
		IndexDocument:  cfg.Site.IndexDocument,
		Repo: pulumi_aws.RepoArgs{
			Owner:       cfg.Source.Owner,
			Name:        cfg.Source.Repo,
			Branch:      cfg.Source.Branch,
			TokenSecret: cfg.Source.TokenSecret,
		},
		Build: pulumi_aws.BuildArgs{
			Image:       cfg.Build.Image,
			ComputeType: cfg.Build.ComputeType,
			Install:     cfg.Build.Install,
			Commands:    cfg.Build.Commands,
			OutputDir:   cfg.Build.OutputDir,
		},
		Definition: def,
	}
}
