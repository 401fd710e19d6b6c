package pulumi_aws

import (
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/codebuild"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/kms"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

func newBuildProject(ctx *pulumi.Context, args SiteArgs, role *iam.Role, key *kms.Key) (*codebuild.Project, error) {
	spec, err := RenderBuildspec(args.Build.Install, args.Build.Commands, args.Build.OutputDir)
	if err != nil {
		return nil, err
	}

	return codebuild.NewProject(ctx, "site-build", &codebuild.ProjectArgs{
		Name:          pulumi.String(args.Name + "-build"),
		Description:   pulumi.Sprintf("Builds %s from the source artifact", args.Name),
		ServiceRole:   role.Arn,
		EncryptionKey: key.Arn,
		BuildTimeout:  pulumi.Int(15),
		Artifacts: &codebuild.ProjectArtifactsArgs{
			Type: pulumi.String("CODEPIPELINE"),
		},
		Environment: &codebuild.ProjectEnvironmentArgs{
			ComputeType: pulumi.String(args.Build.ComputeType),
			Image:       pulumi.String(args.Build.Image),
			Type:        pulumi.String("LINUX_CONTAINER"),
		},
		Source: &codebuild.ProjectSourceArgs{
			Type:      pulumi.String("CODEPIPELINE"),
			Buildspec: pulumi.String(spec),
		},
	})
}
