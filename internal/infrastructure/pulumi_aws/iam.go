package pulumi_aws

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/codebuild"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/kms"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

func assumeRolePolicy(service string) string {
	return fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"Service": "%s"},
    "Action": "sts:AssumeRole"
  }]
}`, service)
}

func newPipelineRole(ctx *pulumi.Context) (*iam.Role, error) {
	return iam.NewRole(ctx, "pipeline-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(assumeRolePolicy("codepipeline.amazonaws.com")),
	})
}

func newBuildRole(ctx *pulumi.Context) (*iam.Role, error) {
	return iam.NewRole(ctx, "build-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(assumeRolePolicy("codebuild.amazonaws.com")),
	})
}

func attachPipelinePolicy(ctx *pulumi.Context, role *iam.Role, artifactBucket, siteBucket *s3.BucketV2, key *kms.Key, project *codebuild.Project) error {
	_, err := iam.NewRolePolicy(ctx, "pipeline-policy", &iam.RolePolicyArgs{
		Role: role.ID(),
		Policy: pulumi.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Action": ["s3:GetObject", "s3:GetObjectVersion", "s3:PutObject", "s3:GetBucketVersioning", "s3:ListBucket"],
      "Resource": ["%s", "%s/*", "%s", "%s/*"]
    },
    {
      "Effect": "Allow",
      "Action": ["kms:Decrypt", "kms:Encrypt", "kms:GenerateDataKey*", "kms:DescribeKey"],
      "Resource": "%s"
    },
    {
      "Effect": "Allow",
      "Action": ["codebuild:StartBuild", "codebuild:BatchGetBuilds"],
      "Resource": "%s"
    }
  ]
}`, artifactBucket.Arn, artifactBucket.Arn, siteBucket.Arn, siteBucket.Arn, key.Arn, project.Arn),
	})
	return err
}

func attachBuildPolicy(ctx *pulumi.Context, role *iam.Role, artifactBucket *s3.BucketV2, key *kms.Key) error {
	_, err := iam.NewRolePolicy(ctx, "build-policy", &iam.RolePolicyArgs{
		Role: role.ID(),
		Policy: pulumi.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Action": ["logs:CreateLogGroup", "logs:CreateLogStream", "logs:PutLogEvents"],
      "Resource": "*"
    },
    {
      "Effect": "Allow",
      "Action": ["s3:GetObject", "s3:GetObjectVersion", "s3:PutObject"],
      "Resource": "%s/*"
    },
    {
      "Effect": "Allow",
      "Action": ["kms:Decrypt", "kms:Encrypt", "kms:GenerateDataKey*", "kms:DescribeKey"],
      "Resource": "%s"
    }
  ]
}`, artifactBucket.Arn, key.Arn),
	})
	return err
}
