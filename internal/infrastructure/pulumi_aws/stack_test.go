package pulumi_aws

import (
	"sync"
	"testing"

	"github.com/dkhalizov/site-pipeline/internal/domain"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudfront"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/codepipeline"
	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type mocks int

func (mocks) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	outputs := resource.PropertyMap{}
	for k, v := range args.Inputs {
		outputs[k] = v
	}

	switch args.TypeToken {
	case "aws:s3/bucketV2:BucketV2":
		name := args.Inputs["bucket"].StringValue()
		outputs["arn"] = resource.NewStringProperty("arn:aws:s3:::" + name)
		outputs["bucketDomainName"] = resource.NewStringProperty(name + ".s3.amazonaws.com")
		outputs["bucketRegionalDomainName"] = resource.NewStringProperty(name + ".s3.eu-west-1.amazonaws.com")
	case "aws:iam/role:Role":
		outputs["arn"] = resource.NewStringProperty("arn:aws:iam::123456789012:role/" + args.Name)
		outputs["name"] = resource.NewStringProperty(args.Name)
	case "aws:kms/key:Key":
		outputs["arn"] = resource.NewStringProperty("arn:aws:kms:eu-west-1:123456789012:key/" + args.Name)
		outputs["keyId"] = resource.NewStringProperty(args.Name)
	case "aws:cloudfront/distribution:Distribution":
		outputs["domainName"] = resource.NewStringProperty("d111111abcdef8.cloudfront.net")
	case "aws:codebuild/project:Project":
		outputs["arn"] = resource.NewStringProperty("arn:aws:codebuild:eu-west-1:123456789012:project/" + args.Name)
	}

	return args.Name + "_id", outputs, nil
}

func (mocks) Call(args pulumi.MockCallArgs) (resource.PropertyMap, error) {
	switch args.Token {
	case "aws:index/getCallerIdentity:getCallerIdentity":
		return resource.PropertyMap{
			"accountId": resource.NewStringProperty("123456789012"),
			"arn":       resource.NewStringProperty("arn:aws:iam::123456789012:root"),
			"id":        resource.NewStringProperty("123456789012"),
			"userId":    resource.NewStringProperty("AIDTESTTESTTESTTEST"),
		}, nil
	case "aws:index/getRegion:getRegion":
		return resource.PropertyMap{
			"name": resource.NewStringProperty("eu-west-1"),
			"id":   resource.NewStringProperty("eu-west-1"),
		}, nil
	case "aws:secretsmanager/getSecret:getSecret":
		return resource.PropertyMap{
			"arn":  resource.NewStringProperty("arn:aws:secretsmanager:eu-west-1:123456789012:secret:github-token-AbCdEf"),
			"name": resource.NewStringProperty("github-token"),
			"id":   resource.NewStringProperty("arn:aws:secretsmanager:eu-west-1:123456789012:secret:github-token-AbCdEf"),
		}, nil
	case "aws:secretsmanager/getSecretVersion:getSecretVersion":
		return resource.PropertyMap{
			"secretString": resource.NewStringProperty("gh-token"),
			"versionId":    resource.NewStringProperty("v1"),
			"id":           resource.NewStringProperty("arn:aws:secretsmanager:eu-west-1:123456789012:secret:github-token-AbCdEf|v1"),
		}, nil
	}
	return resource.PropertyMap{}, nil
}

func testArgs() SiteArgs {
	return SiteArgs{
		Name:           "static-site",
		Domains:        []string{"www.example.com", "example.com"},
		CertificateArn: "arn:aws:acm:us-east-1:123456789012:certificate/abc",
		GeoWhitelist:   []string{"DE", "CH"},
		CacheControl:   "public, max-age=300",
		IndexDocument:  "index.html",
		Repo: RepoArgs{
			Owner:       "example",
			Name:        "site",
			Branch:      "main",
			TokenSecret: "github-token",
		},
		Build: BuildArgs{
			Image:       "aws/codebuild/standard:7.0",
			ComputeType: "BUILD_GENERAL1_SMALL",
			Install:     []string{"npm ci"},
			Commands:    []string{"npm run build"},
			OutputDir:   "dist",
		},
		Definition: domain.StaticSiteDefinition(),
	}
}

func TestDeploy_BucketNamesAreDerived(t *testing.T) {
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		site, err := Deploy(ctx, testArgs())
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(2)

		site.SiteBucket.Bucket.ApplyT(func(name string) error {
			defer wg.Done()
			if name != "static-site-123456789012-eu-west-1" {
				t.Errorf("site bucket: got %q", name)
			}
			return nil
		})

		site.LogBucket.Bucket.ApplyT(func(name string) error {
			defer wg.Done()
			if name != "static-site-logs-123456789012-eu-west-1" {
				t.Errorf("log bucket: got %q", name)
			}
			return nil
		})

		wg.Wait()
		return nil
	}, pulumi.WithMocks("site-pipeline", "test", mocks(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeploy_StageOrder(t *testing.T) {
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		site, err := Deploy(ctx, testArgs())
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(1)

		site.Pipeline.Stages.ApplyT(func(stages []codepipeline.PipelineStage) error {
			defer wg.Done()

			want := []string{"Source", "Build", "Deploy"}
			if len(stages) != len(want) {
				t.Fatalf("expected %d stages, got %d", len(want), len(stages))
			}
			for i, st := range stages {
				if st.Name != want[i] {
					t.Errorf("stage %d: got %q, want %q", i, st.Name, want[i])
				}
				if len(st.Actions) == 0 {
					t.Errorf("stage %q has no actions", st.Name)
				}
			}

			src := stages[0].Actions[0]
			if len(src.OutputArtifacts) != 1 || src.OutputArtifacts[0] != domain.ArtifactSource {
				t.Errorf("source outputs: got %v", src.OutputArtifacts)
			}
			build := stages[1].Actions[0]
			if len(build.InputArtifacts) != 1 || build.InputArtifacts[0] != domain.ArtifactSource {
				t.Errorf("build inputs: got %v", build.InputArtifacts)
			}
			deploy := stages[2].Actions[0]
			if len(deploy.InputArtifacts) != 1 || deploy.InputArtifacts[0] != domain.ArtifactSite {
				t.Errorf("deploy inputs: got %v", deploy.InputArtifacts)
			}
			if deploy.RunOrder == nil || *deploy.RunOrder != 1 {
				t.Errorf("deploy run order: got %v", deploy.RunOrder)
			}
			return nil
		})

		wg.Wait()
		return nil
	}, pulumi.WithMocks("site-pipeline", "test", mocks(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeploy_ErrorResponseMapping(t *testing.T) {
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		site, err := Deploy(ctx, testArgs())
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(2)

		site.Distribution.CustomErrorResponses.ApplyT(func(rs []cloudfront.DistributionCustomErrorResponse) error {
			defer wg.Done()

			if len(rs) != 1 {
				t.Fatalf("expected 1 error response, got %d", len(rs))
			}
			r := rs[0]
			if r.ErrorCode != 403 {
				t.Errorf("error code: got %d", r.ErrorCode)
			}
			if r.ResponseCode == nil || *r.ResponseCode != 200 {
				t.Errorf("response code: got %v", r.ResponseCode)
			}
			if r.ResponsePagePath == nil || *r.ResponsePagePath != "/index.html" {
				t.Errorf("response page: got %v", r.ResponsePagePath)
			}
			return nil
		})

		site.Distribution.DefaultCacheBehavior.ApplyT(func(b cloudfront.DistributionDefaultCacheBehavior) error {
			defer wg.Done()
			if b.ViewerProtocolPolicy != "redirect-to-https" {
				t.Errorf("viewer protocol policy: got %q", b.ViewerProtocolPolicy)
			}
			return nil
		})

		wg.Wait()
		return nil
	}, pulumi.WithMocks("site-pipeline", "test", mocks(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeploy_AliasesAndGeoRestriction(t *testing.T) {
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		site, err := Deploy(ctx, testArgs())
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(2)

		site.Distribution.Aliases.ApplyT(func(aliases []string) error {
			defer wg.Done()
			if len(aliases) != 2 || aliases[0] != "www.example.com" {
				t.Errorf("aliases: got %v", aliases)
			}
			return nil
		})

		site.Distribution.Restrictions.ApplyT(func(r cloudfront.DistributionRestrictions) error {
			defer wg.Done()
			if r.GeoRestriction.RestrictionType != "whitelist" {
				t.Errorf("restriction type: got %q", r.GeoRestriction.RestrictionType)
			}
			if len(r.GeoRestriction.Locations) != 2 {
				t.Errorf("locations: got %v", r.GeoRestriction.Locations)
			}
			return nil
		})

		wg.Wait()
		return nil
	}, pulumi.WithMocks("site-pipeline", "test", mocks(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeploy_NoGeoRestrictionByDefault(t *testing.T) {
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		args := testArgs()
		args.GeoWhitelist = nil

		site, err := Deploy(ctx, args)
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(1)

		site.Distribution.Restrictions.ApplyT(func(r cloudfront.DistributionRestrictions) error {
			defer wg.Done()
			if r.GeoRestriction.RestrictionType != "none" {
				t.Errorf("restriction type: got %q", r.GeoRestriction.RestrictionType)
			}
			return nil
		})

		wg.Wait()
		return nil
	}, pulumi.WithMocks("site-pipeline", "test", mocks(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
