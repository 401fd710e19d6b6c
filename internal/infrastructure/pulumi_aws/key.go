package pulumi_aws

import (
	"encoding/json"
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/kms"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// newArtifactKey declares the key encrypting pipeline artifacts. Use of the
// key is granted to the named pipeline and build roles, not account-wide;
// the account root keeps administration only.
func newArtifactKey(ctx *pulumi.Context, site, account string, pipelineRole, buildRole *iam.Role) (*kms.Key, error) {
	policy := pulumi.All(pipelineRole.Arn, buildRole.Arn).ApplyT(func(vs []interface{}) (string, error) {
		doc := map[string]interface{}{
			"Version": "2012-10-17",
			"Statement": []interface{}{
				map[string]interface{}{
					"Sid":       "RootAdmin",
					"Effect":    "Allow",
					"Principal": map[string]interface{}{"AWS": fmt.Sprintf("arn:aws:iam::%s:root", account)},
					"Action":    "kms:*",
					"Resource":  "*",
				},
				map[string]interface{}{
					"Sid":       "PipelineUse",
					"Effect":    "Allow",
					"Principal": map[string]interface{}{"AWS": []interface{}{vs[0], vs[1]}},
					"Action": []string{
						"kms:Decrypt",
						"kms:Encrypt",
						"kms:ReEncrypt*",
						"kms:GenerateDataKey*",
						"kms:DescribeKey",
					},
					"Resource": "*",
				},
			},
		}

		b, err := json.Marshal(doc)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}).(pulumi.StringOutput)

	key, err := kms.NewKey(ctx, "artifact-key", &kms.KeyArgs{
		Description:          pulumi.Sprintf("Encrypts %s pipeline artifacts", site),
		DeletionWindowInDays: pulumi.Int(14),
		EnableKeyRotation:    pulumi.Bool(true),
		Policy:               policy,
	})
	if err != nil {
		return nil, err
	}

	_, err = kms.NewAlias(ctx, "artifact-key-alias", &kms.AliasArgs{
		Name:        pulumi.Sprintf("alias/%s-artifacts", site),
		TargetKeyId: key.KeyId,
	})
	if err != nil {
		return nil, err
	}

	return key, nil
}
