package pulumi_aws

import "fmt"

// Bucket names are derived from the account and region so repeated synthesis
// with the same inputs lands on the same physical resources.

func SiteBucketName(site, account, region string) string {
	return fmt.Sprintf("%s-%s-%s", site, account, region)
}

func LogBucketName(site, account, region string) string {
	return fmt.Sprintf("%s-logs-%s-%s", site, account, region)
}

func ArtifactBucketName(site, account, region string) string {
	return fmt.Sprintf("%s-artifacts-%s-%s", site, account, region)
}
