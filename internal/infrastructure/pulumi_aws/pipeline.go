package pulumi_aws

import (
	"fmt"

	"github.com/dkhalizov/site-pipeline/internal/domain"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/codebuild"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/codepipeline"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/kms"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// newPipeline maps the definition's stage/action/artifact graph onto the
// engine's pipeline resource. Stage order is the definition's declaration
// order.
func newPipeline(ctx *pulumi.Context, args SiteArgs, role *iam.Role, artifactBucket, siteBucket *s3.BucketV2, key *kms.Key, project *codebuild.Project, token pulumi.StringInput) (*codepipeline.Pipeline, error) {
	stages := codepipeline.PipelineStageArray{}
	for _, st := range args.Definition.Stages {
		actions := codepipeline.PipelineStageActionArray{}
		for _, a := range st.Actions {
			act, err := stageAction(args, a, siteBucket, project, token)
			if err != nil {
				return nil, err
			}
			actions = append(actions, act)
		}
		stages = append(stages, &codepipeline.PipelineStageArgs{
			Name:    pulumi.String(st.Name),
			Actions: actions,
		})
	}

	return codepipeline.NewPipeline(ctx, "site-pipeline", &codepipeline.PipelineArgs{
		Name:    pulumi.String(args.Name),
		RoleArn: role.Arn,
		ArtifactStores: codepipeline.PipelineArtifactStoreArray{
			&codepipeline.PipelineArtifactStoreArgs{
				Location: artifactBucket.Bucket,
				Type:     pulumi.String("S3"),
				EncryptionKey: &codepipeline.PipelineArtifactStoreEncryptionKeyArgs{
					Id:   key.Arn,
					Type: pulumi.String("KMS"),
				},
			},
		},
		Stages: stages,
	})
}

func stageAction(args SiteArgs, a domain.Action, siteBucket *s3.BucketV2, project *codebuild.Project, token pulumi.StringInput) (*codepipeline.PipelineStageActionArgs, error) {
	act := &codepipeline.PipelineStageActionArgs{
		Name:            pulumi.String(a.Name),
		Version:         pulumi.String("1"),
		RunOrder:        pulumi.Int(a.RunOrder),
		InputArtifacts:  toStringArray(a.Consumes),
		OutputArtifacts: toStringArray(a.Produces),
	}

	switch a.Kind {
	case domain.ActionSourceFetch:
		act.Category = pulumi.String("Source")
		act.Owner = pulumi.String("ThirdParty")
		act.Provider = pulumi.String("GitHub")
		act.Configuration = pulumi.StringMap{
			"Owner":                pulumi.String(args.Repo.Owner),
			"Repo":                 pulumi.String(args.Repo.Name),
			"Branch":               pulumi.String(args.Repo.Branch),
			"OAuthToken":           token,
			"PollForSourceChanges": pulumi.String("false"),
		}
	case domain.ActionBuildExecute:
		act.Category = pulumi.String("Build")
		act.Owner = pulumi.String("AWS")
		act.Provider = pulumi.String("CodeBuild")
		act.Configuration = pulumi.StringMap{
			"ProjectName": project.Name,
		}
	case domain.ActionDeployPublish:
		act.Category = pulumi.String("Deploy")
		act.Owner = pulumi.String("AWS")
		act.Provider = pulumi.String("S3")
		act.Configuration = pulumi.StringMap{
			"BucketName":   siteBucket.Bucket,
			"Extract":      pulumi.String("true"),
			"CacheControl": pulumi.String(args.CacheControl),
		}
	default:
		return nil, fmt.Errorf("unknown action kind %q", a.Kind)
	}

	return act, nil
}

func toStringArray(items []string) pulumi.StringArray {
	out := pulumi.StringArray{}
	for _, s := range items {
		out = append(out, pulumi.String(s))
	}
	return out
}
