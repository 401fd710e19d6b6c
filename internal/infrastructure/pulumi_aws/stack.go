package pulumi_aws

import (
	"github.com/dkhalizov/site-pipeline/internal/domain"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudfront"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/codebuild"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/codepipeline"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/kms"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/secretsmanager"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type RepoArgs struct {
	Owner       string
	Name        string
	Branch      string
	TokenSecret string
}

type BuildArgs struct {
	Image       string
	ComputeType string
	Install     []string
	Commands    []string
	OutputDir   string
}

type SiteArgs struct {
	Name           string
	Domains        []string
	CertificateArn string
	GeoWhitelist   []string
	CacheControl   string
	IndexDocument  string
	Repo           RepoArgs
	Build          BuildArgs
	Definition     domain.Definition
}

type Site struct {
	SiteBucket     *s3.BucketV2
	LogBucket      *s3.BucketV2
	ArtifactBucket *s3.BucketV2
	Distribution   *cloudfront.Distribution
	ArtifactKey    *kms.Key
	BuildProject   *codebuild.Project
	Pipeline       *codepipeline.Pipeline
}

// Deploy declares every resource of the delivery stack. All orchestration,
// diffing, and rollout stay with the engine; this only assembles the
// property bags.
func Deploy(ctx *pulumi.Context, args SiteArgs) (*Site, error) {
	ident, err := aws.GetCallerIdentity(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	region, err := aws.GetRegion(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	pipelineRole, err := newPipelineRole(ctx)
	if err != nil {
		return nil, err
	}
	buildRole, err := newBuildRole(ctx)
	if err != nil {
		return nil, err
	}

	key, err := newArtifactKey(ctx, args.Name, ident.AccountId, pipelineRole, buildRole)
	if err != nil {
		return nil, err
	}

	siteBucket, err := newSiteBucket(ctx, SiteBucketName(args.Name, ident.AccountId, region.Name), args.IndexDocument)
	if err != nil {
		return nil, err
	}
	logBucket, err := newLogBucket(ctx, LogBucketName(args.Name, ident.AccountId, region.Name))
	if err != nil {
		return nil, err
	}
	artifactBucket, err := newArtifactBucket(ctx, ArtifactBucketName(args.Name, ident.AccountId, region.Name))
	if err != nil {
		return nil, err
	}

	dist, err := newDistribution(ctx, args, siteBucket, logBucket)
	if err != nil {
		return nil, err
	}

	project, err := newBuildProject(ctx, args, buildRole, key)
	if err != nil {
		return nil, err
	}

	if err := attachBuildPolicy(ctx, buildRole, artifactBucket, key); err != nil {
		return nil, err
	}
	if err := attachPipelinePolicy(ctx, pipelineRole, artifactBucket, siteBucket, key, project); err != nil {
		return nil, err
	}

	token, err := sourceToken(ctx, args.Repo.TokenSecret)
	if err != nil {
		return nil, err
	}

	pipe, err := newPipeline(ctx, args, pipelineRole, artifactBucket, siteBucket, key, project, token)
	if err != nil {
		return nil, err
	}

	return &Site{
		SiteBucket:     siteBucket,
		LogBucket:      logBucket,
		ArtifactBucket: artifactBucket,
		Distribution:   dist,
		ArtifactKey:    key,
		BuildProject:   project,
		Pipeline:       pipe,
	}, nil
}

// sourceToken resolves the repository token from the named secret-store
// entry. The token value never lands in the configuration or the state in
// plaintext.
func sourceToken(ctx *pulumi.Context, secretName string) (pulumi.StringInput, error) {
	sec, err := secretsmanager.LookupSecret(ctx, &secretsmanager.LookupSecretArgs{
		Name: pulumi.StringRef(secretName),
	})
	if err != nil {
		return nil, err
	}

	ver, err := secretsmanager.LookupSecretVersion(ctx, &secretsmanager.LookupSecretVersionArgs{
		SecretId: sec.Arn,
	})
	if err != nil {
		return nil, err
	}

	return pulumi.ToSecret(pulumi.String(ver.SecretString)).(pulumi.StringOutput), nil
}
