package pulumi_aws

import (
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// newSiteBucket declares the public bucket CloudFront fronts. The bucket is
// website-configured so the SPA entry point also answers direct hits.
func newSiteBucket(ctx *pulumi.Context, name, indexDocument string) (*s3.BucketV2, error) {
	bucket, err := s3.NewBucketV2(ctx, "site", &s3.BucketV2Args{
		Bucket:       pulumi.String(name),
		ForceDestroy: pulumi.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	access, err := s3.NewBucketPublicAccessBlock(ctx, "site-public-access", &s3.BucketPublicAccessBlockArgs{
		Bucket:                bucket.ID(),
		BlockPublicAcls:       pulumi.Bool(false),
		BlockPublicPolicy:     pulumi.Bool(false),
		IgnorePublicAcls:      pulumi.Bool(false),
		RestrictPublicBuckets: pulumi.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	_, err = s3.NewBucketWebsiteConfigurationV2(ctx, "site-website", &s3.BucketWebsiteConfigurationV2Args{
		Bucket: bucket.ID(),
		IndexDocument: &s3.BucketWebsiteConfigurationV2IndexDocumentArgs{
			Suffix: pulumi.String(indexDocument),
		},
		ErrorDocument: &s3.BucketWebsiteConfigurationV2ErrorDocumentArgs{
			Key: pulumi.String(indexDocument),
		},
	})
	if err != nil {
		return nil, err
	}

	// the policy races the public-access block without an explicit edge
	_, err = s3.NewBucketPolicy(ctx, "site-read", &s3.BucketPolicyArgs{
		Bucket: bucket.ID(),
		Policy: pulumi.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [{
    "Sid": "PublicRead",
    "Effect": "Allow",
    "Principal": "*",
    "Action": "s3:GetObject",
    "Resource": "%s/*"
  }]
}`, bucket.Arn),
	}, pulumi.DependsOn([]pulumi.Resource{access}))
	if err != nil {
		return nil, err
	}

	return bucket, nil
}

// newLogBucket declares the private bucket the distribution writes access
// logs into. Log delivery still needs ACLs, so object ownership is relaxed.
func newLogBucket(ctx *pulumi.Context, name string) (*s3.BucketV2, error) {
	bucket, err := s3.NewBucketV2(ctx, "logs", &s3.BucketV2Args{
		Bucket:       pulumi.String(name),
		ForceDestroy: pulumi.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	ownership, err := s3.NewBucketOwnershipControls(ctx, "logs-ownership", &s3.BucketOwnershipControlsArgs{
		Bucket: bucket.ID(),
		Rule: &s3.BucketOwnershipControlsRuleArgs{
			ObjectOwnership: pulumi.String("BucketOwnerPreferred"),
		},
	})
	if err != nil {
		return nil, err
	}

	_, err = s3.NewBucketAclV2(ctx, "logs-acl", &s3.BucketAclV2Args{
		Bucket: bucket.ID(),
		Acl:    pulumi.String("log-delivery-write"),
	}, pulumi.DependsOn([]pulumi.Resource{ownership}))
	if err != nil {
		return nil, err
	}

	return bucket, nil
}

func newArtifactBucket(ctx *pulumi.Context, name string) (*s3.BucketV2, error) {
	return s3.NewBucketV2(ctx, "artifacts", &s3.BucketV2Args{
		Bucket:       pulumi.String(name),
		ForceDestroy: pulumi.Bool(true),
	})
}
